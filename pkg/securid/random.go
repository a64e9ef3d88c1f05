package securid

import (
	"crypto/rand"
	"time"
)

// GenerateRandomToken builds a fresh, unprotected Token with a random
// 128-bit seed, a random 12-digit serial, and an expiration a few months
// out, per spec.md §5.6. The returned token's DecSeed is already
// populated (HasDecSeed), so ComputeTokenCode works on it immediately.
func GenerateRandomToken() (*Token, error) {
	const op = "GenerateRandomToken"

	t := &Token{}

	if _, err := rand.Read(t.DecSeed[:]); err != nil {
		return nil, newError(op, ErrGeneral)
	}
	t.HasDecSeed = true

	var randBytes [16]byte
	if _, err := rand.Read(randBytes[:]); err != nil {
		return nil, newError(op, ErrGeneral)
	}

	t.DecSeedHash = shortMAC(t.DecSeed[:])

	keyHash, deviceIDHash, err := deriveKeyHash("", "", t.IsSmartphone)
	if err != nil {
		return nil, err
	}
	t.DeviceIDHash = deviceIDHash

	enc := aesECBEncrypt(keyHash[:], t.DecSeed[:])
	copy(t.EncSeed[:], enc)
	t.HasEncSeed = true
	wipe(keyHash[:])

	t.Flags = flagFeat5 | fldDigitMask | fldPinModeMask |
		(1 << fldNumSecondsShift) | flag128Bit

	var serial [serialChars]byte
	for i := range serial {
		serial[i] = '0' + randBytes[i]%10
	}
	t.Serial = string(serial[:])

	now := time.Now().Unix()
	t.ExpDate = uint16((now-SecurIDEpoch)/(24*60*60) + 60 + int64(randBytes[12]&0x0f)*30)

	return t, nil
}
