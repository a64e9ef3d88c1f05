package securid

import (
	"strings"
)

// Layout constants for the ctf string format (spec.md §6).
const (
	verChars      = 1
	serialChars   = 12
	binencOfs     = verChars + serialChars // 13
	binencBits    = 189
	checksumChars = 5
	checksumOfs   = binencOfs + binencBits/numBitsPerChar // 76
	checksumBits  = 15

	// MinTokenChars and MaxTokenChars bound the accepted ctf string length.
	// Decode always reads the binenc field at the fixed binencOfs..+binencBits
	// window regardless of version byte, so anything shorter than that window
	// plus the checksum trailer can't be decoded without reading past the end
	// of the string; MinTokenChars therefore equals MaxTokenChars. See
	// DESIGN.md for why an earlier, shorter MinTokenChars was wrong.
	MinTokenChars = binencOfs + binencBits/numBitsPerChar + checksumChars // 81
	MaxTokenChars = binencOfs + binencBits/numBitsPerChar + checksumChars // 81

	// tokenBitBufLen sizes the scratch buffer numInputToBits/bitsToNumOutput
	// operate over. It must hold binencBits bits plus the 2-byte read/write
	// window headroom those functions need on their last iteration.
	tokenBitBufLen = (binencBits+7)/8 + 2
)

// Token is the decoded state of a single ctf token. Fields set by
// DecodeToken are always populated; DecSeed and Pin are only meaningful
// once DecryptSeed and a caller-supplied PIN have populated them.
type Token struct {
	Serial string // 12 decimal digits

	// IsSmartphone selects the device-id field width/charset used by
	// deriveKeyHash: 40 hex digits when true, 32 decimal digits when
	// false. Nothing in a ctf string signals this; callers set it from
	// whatever they already know about the token's provenance.
	IsSmartphone bool

	EncSeed    [aesBlockSize]byte // seed encrypted under the key hash
	DecSeed    [aesBlockSize]byte // seed in the clear, valid once HasDecSeed
	HasEncSeed bool
	HasDecSeed bool

	Flags        uint16
	ExpDate      uint16 // days since SecurIDEpoch, minus one
	DecSeedHash  uint16 // 15-bit short MAC of DecSeed
	DeviceIDHash uint16 // 15-bit short MAC of the binding device id

	// Pin, if non-empty, is folded into ComputeTokenCode's output. It is
	// never part of the ctf string encoding; callers populate it out of
	// band (e.g. after DecryptPIN).
	Pin string
}

// Clone returns a deep copy of t. Token contains no pointers or slices
// other than the Serial/Pin strings (immutable in Go), so a plain value
// copy already suffices; Clone exists so callers don't need to know that.
func (t *Token) Clone() *Token {
	c := *t
	return &c
}

// Wipe zeroes the token's seed material in place. Callers that are done
// with a Token's cleartext seed should call this before letting it go out
// of scope.
func (t *Token) Wipe() {
	for i := range t.DecSeed {
		t.DecSeed[i] = 0
	}
	t.HasDecSeed = false
}

// DecodeToken parses a ctf string into a Token, verifying its trailing
// 15-bit checksum. It does not decrypt the seed; call DecryptSeed next.
func DecodeToken(in string) (*Token, error) {
	const op = "DecodeToken"

	n := len(in)
	if n < MinTokenChars || n > MaxTokenChars {
		return nil, newError(op, ErrBadLen)
	}
	if in[0] != '1' && in[0] != '2' {
		return nil, newError(op, ErrTokenVersion)
	}
	for i := 0; i < n; i++ {
		if in[i] < '0' || in[i] > '9' {
			return nil, newError(op, ErrBadLen)
		}
	}

	checksumOfsActual := n - checksumChars

	d := make([]byte, tokenBitBufLen)
	copy(d, numInputToBits(in[checksumOfsActual:], checksumBits))
	tokenMAC := uint16(getBits(d, 0, checksumBits))
	computedMAC := shortMAC([]byte(in[:checksumOfsActual]))
	if tokenMAC != computedMAC {
		return nil, newError(op, ErrChecksumFailed)
	}

	t := &Token{Serial: in[verChars : verChars+serialChars]}

	for i := range d {
		d[i] = 0
	}
	copy(d, numInputToBits(in[binencOfs:], binencBits))

	copy(t.EncSeed[:], d[:aesBlockSize])
	t.HasEncSeed = true

	t.Flags = uint16(getBits(d, 128, 16))
	t.ExpDate = uint16(getBits(d, 144, 14))
	t.DecSeedHash = uint16(getBits(d, 159, 15))
	t.DeviceIDHash = uint16(getBits(d, 174, 15))

	return t, nil
}

// EncodeToken serializes t back into a ctf string, always under version
// '2' regardless of the version it was originally decoded from. pass and
// devid re-derive the key hash used to (re-)encrypt DecSeed; an empty
// string means "no password"/"no device binding", clearing the
// corresponding protection flag. t.DecSeed must already be populated
// (HasDecSeed), since encoding always re-encrypts from the cleartext seed.
func EncodeToken(t *Token, pass, devid string) (string, error) {
	const op = "EncodeToken"

	if !t.HasDecSeed {
		return "", newError(op, ErrGeneral)
	}
	if len(t.Serial) != serialChars {
		return "", newError(op, ErrBadLen)
	}

	nt := t.Clone()

	keyHash, deviceIDHash, err := deriveKeyHash(pass, devid, nt.IsSmartphone)
	if err != nil {
		return "", err
	}
	nt.DeviceIDHash = deviceIDHash

	if pass != "" {
		nt.Flags |= flagPassProt
	} else {
		nt.Flags &^= flagPassProt
	}
	if devid != "" {
		nt.Flags |= flagSNProt
	} else {
		nt.Flags &^= flagSNProt
	}

	d := make([]byte, tokenBitBufLen)
	enc := aesECBEncrypt(keyHash[:], nt.DecSeed[:])
	copy(nt.EncSeed[:], enc)
	copy(d, nt.EncSeed[:])

	setBits(d, 128, 16, uint32(nt.Flags))
	setBits(d, 144, 14, uint32(nt.ExpDate))
	setBits(d, 159, 15, uint32(shortMAC(nt.DecSeed[:])))
	setBits(d, 174, 15, uint32(nt.DeviceIDHash))

	var b strings.Builder
	b.WriteByte('2')
	b.WriteString(nt.Serial)
	b.WriteString(bitsToNumOutput(d, binencBits))

	head := b.String()
	setBits(d, 0, checksumBits, uint32(shortMAC([]byte(head))))
	b.WriteString(bitsToNumOutput(d, checksumBits))

	wipe(keyHash[:])
	return b.String(), nil
}
