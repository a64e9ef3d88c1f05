package securid

import (
	"crypto/aes"
	"encoding/hex"
	"log/slog"
	"strings"
)

// aesBlockSize is the AES block size in bytes; every buffer this package
// hands to the cipher (MAC work buffer, seed, key material) is exactly one
// block.
const aesBlockSize = 16

// aesECBEncrypt encrypts a single 16-byte block under key using AES-128 in
// ECB mode (i.e. just the raw block cipher). spec.md §1 treats the AES-128
// primitive as an external collaborator assumed available from any standard
// cryptographic library; this is that primitive, built directly on
// crypto/aes the way ntag424/crypto.go builds its own aesECBEncrypt.
func aesECBEncrypt(key, blockIn []byte) []byte {
	block, err := aes.NewCipher(key)
	if err != nil {
		// A 16-byte AES-128 key always produces a valid cipher; per
		// spec.md §7 a cipher-setup failure here is impossible for a
		// conformant implementation, and proceeding would corrupt
		// token material, so this mirrors the original's abort().
		panic("securid: aes.NewCipher failed on a 16-byte key: " + err.Error())
	}
	out := make([]byte, aesBlockSize)
	block.Encrypt(out, blockIn)
	return out
}

// aesECBDecrypt decrypts a single 16-byte block under key.
func aesECBDecrypt(key, blockIn []byte) []byte {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic("securid: aes.NewCipher failed on a 16-byte key: " + err.Error())
	}
	out := make([]byte, aesBlockSize)
	block.Decrypt(out, blockIn)
	return out
}

// encryptThenXOR runs one round of the custom MAC's internal state update:
// it encrypts work under a key derived from the current input block
// (blockAsKey itself is used as the AES key — the data drives the key schedule, not the
// other way around, which is what makes this a non-standard construction),
// then XORs the result back into work in place.
func encryptThenXOR(blockAsKey []byte, work []byte) {
	enc := aesECBEncrypt(blockAsKey, work)
	for i := range work {
		work[i] ^= enc[i]
	}
}

// macHash computes the 128-bit custom MAC over in, per spec.md §4.2. It is
// an iterated AES-ECB construction where each input block is used as the
// AES *key* (not the plaintext) against a running work buffer, ending with
// a length-encoding padding block and a final tightening round.
func macHash(in []byte) [aesBlockSize]byte {
	work := [aesBlockSize]byte{}
	for i := range work {
		work[i] = 0xff
	}

	// pad encodes the bit length of in, big-endian, in the low bytes.
	var pad [aesBlockSize]byte
	bitLen := len(in) * 8
	for i := aesBlockSize - 1; bitLen > 0; i-- {
		pad[i] = byte(bitLen)
		bitLen >>= 8
	}

	odd := false
	rest := in
	for len(rest) > aesBlockSize {
		encryptThenXOR(rest[:aesBlockSize], work[:])
		rest = rest[aesBlockSize:]
		odd = !odd
	}

	// Final 0-16 bytes of input, zero-padded to a full block.
	var last [aesBlockSize]byte
	copy(last[:], rest)
	encryptThenXOR(last[:], work[:])

	// An extra all-zero block keeps the total absorption count even for
	// certain input lengths; this is load-bearing for bit-exact
	// compatibility and must not be "simplified" away.
	if odd {
		var zero [aesBlockSize]byte
		encryptThenXOR(zero[:], work[:])
	}

	encryptThenXOR(pad[:], work[:])

	out := work
	encryptThenXOR(work[:], out[:])

	slog.Debug("mac computed",
		"input_len", len(in),
		"mac", strings.ToUpper(hex.EncodeToString(out[:])))

	return out
}

// shortMAC returns the 15-bit truncated MAC used for in-line integrity
// checks: all 8 bits of mac[0] followed by the top 7 bits of mac[1].
func shortMAC(in []byte) uint16 {
	mac := macHash(in)
	return uint16(mac[0])<<7 | uint16(mac[1])>>1
}
