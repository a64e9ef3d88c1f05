package securid

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

// MaxPass is the maximum password length, in bytes, accepted by
// deriveKeyHash. See DESIGN.md for why this value was chosen (the
// original header defining it was not available in original_source).
const MaxPass = 40

// devIDCharsSmartphone and devIDCharsClassic are the fixed widths of the
// device-id field baked into the key-hash input buffer: a smartphone ctf
// string binds to a 40-character hex device id, a classic one to a
// 32-character decimal device id.
const (
	devIDCharsSmartphone = 40
	devIDCharsClassic    = 32
)

// magicSuffix is appended after the password/device-id material before
// hashing, fixed across every ctf token this format produces.
var magicSuffix = [7]byte{0xd8, 0xf5, 0x32, 0x53, 0x82, 0x89, 0x00}

func devIDLen(isSmartphone bool) int {
	if isSmartphone {
		return devIDCharsSmartphone
	}
	return devIDCharsClassic
}

// isValidDevIDDigit reports whether r belongs to the device id's expected
// charset: hex digits for a smartphone device id, decimal digits
// otherwise.
func isValidDevIDDigit(r byte, isSmartphone bool) bool {
	if isSmartphone {
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return r >= '0' && r <= '9'
}

// deriveKeyHash implements spec.md §4.3: it builds
// password || filtered-and-padded-device-id || magicSuffix, MACs it, and
// returns the resulting AES key alongside the short MAC of the device-id
// field (computed unconditionally, per spec.md §9's "device id in
// non-SNPROT mode" open question - callers decide whether to act on it).
//
// pass and devid are both optional (pass "" means no password contributes
// to the hash; devid "" means the device-id field is all zero bytes).
func deriveKeyHash(pass, devid string, isSmartphone bool) (keyHash [aesBlockSize]byte, deviceIDHash uint16, err error) {
	dlen := devIDLen(isSmartphone)

	if len(pass) > MaxPass {
		return keyHash, 0, newError("deriveKeyHash", ErrBadPassword)
	}

	// devidBuf holds the filtered device-id digits, zero-padded to the
	// fixed field width dlen. It is both the device-id field of the
	// key-hash MAC input and the input of device_id_hash.
	devidBuf := make([]byte, dlen)
	devidFiltered := 0
	for i := 0; i < len(devid); i++ {
		c := devid[i]
		if !isValidDevIDDigit(c, isSmartphone) {
			continue
		}
		if devidFiltered >= dlen {
			return keyHash, 0, newError("deriveKeyHash", ErrBadPassword)
		}
		devidBuf[devidFiltered] = c
		devidFiltered++
	}
	deviceIDHash = shortMAC(devidBuf)

	// The key-hash MAC input is pass || the full zero-padded device-id
	// field || magicSuffix, so the MAC covers passlen+dlen+magicLen bytes
	// whether or not a device id was given (with none, the field is dlen
	// zero bytes).
	buf := make([]byte, 0, MaxPass+dlen+len(magicSuffix))
	buf = append(buf, pass...)
	buf = append(buf, devidBuf...)
	buf = append(buf, magicSuffix[:]...)

	keyHash = macHash(buf)

	slog.Debug("key hash derived",
		"has_password", pass != "",
		"devid_digits", devidFiltered,
		"is_smartphone", isSmartphone,
		"device_id_hash", fmt.Sprintf("%04x", deviceIDHash),
		"key_hash", strings.ToUpper(hex.EncodeToString(keyHash[:])))

	wipe(buf)
	wipe(devidBuf)
	return keyHash, deviceIDHash, nil
}

// wipe zeroes b in place. Called on transient buffers (password/device-id
// material, derived key hashes) before they leave scope, per spec.md §3's
// Lifecycle note that sensitive byte arrays should be zeroed when done.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
