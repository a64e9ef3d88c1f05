package securid

import "time"

// SecurIDEpoch is the reference point for exp_date and internal time
// fields: 2000-01-01 00:00:00 UTC, expressed as a Unix timestamp.
const SecurIDEpoch = 946684800

// keyFromTime builds one AES key block from a BCD-encoded time prefix and
// the last 8 digits of the serial, per spec.md §5.2. bcdTimeBytes selects
// how many of the 8 BCD time bytes actually carry time material; the rest
// of the 8-byte time region, plus the fixed 0xaa/0xbb padding, is always
// present.
func keyFromTime(bcdTime []byte, bcdTimeBytes int, serial string) [aesBlockSize]byte {
	var key [aesBlockSize]byte
	for i := 0; i < 8; i++ {
		key[i] = 0xaa
	}
	copy(key[:8], bcdTime[:bcdTimeBytes])
	for i := 12; i < 16; i++ {
		key[i] = 0xbb
	}
	for i := 0; i < 4; i++ {
		hi := serial[4+2*i] - '0'
		lo := serial[4+2*i+1] - '0'
		key[8+i] = hi<<4 | lo
	}
	return key
}

// ComputeTokenCode returns the tokencode string valid at now for t, using
// t.DecSeed (which must already be populated via DecryptSeed) and,
// whenever t.Pin is non-empty, additively folding it into the low digits
// (unconditional on t.PinRequired(), matching the reference: the caller
// decides whether to collect a PIN, this function just folds whatever it
// was given). The result always has 8 digits, whatever TokencodeDigits()
// says; callers that want fewer take the low N digits, per
// spec.md §5.4. This is the hot path and intentionally carries no
// logging.
func ComputeTokenCode(t *Token, now time.Time) (string, error) {
	const op = "ComputeTokenCode"

	if !t.HasDecSeed {
		return "", newError(op, ErrGeneral)
	}
	if len(t.Serial) != serialChars {
		return "", newError(op, ErrBadLen)
	}

	gmt := now.UTC()

	var bcdTime [8]byte
	bcdWrite(bcdTime[0:2], gmt.Year(), 2)
	bcdWrite(bcdTime[2:3], int(gmt.Month()), 1)
	bcdWrite(bcdTime[3:4], gmt.Day(), 1)
	bcdWrite(bcdTime[4:5], gmt.Hour(), 1)
	bcdWrite(bcdTime[5:6], gmt.Minute()&^0x03, 1)
	bcdTime[6], bcdTime[7] = 0, 0

	key0 := keyFromTime(bcdTime[:], 2, t.Serial)
	key0 = [aesBlockSize]byte(aesECBEncrypt(t.DecSeed[:], key0[:]))
	key1 := keyFromTime(bcdTime[:], 3, t.Serial)
	key1 = [aesBlockSize]byte(aesECBEncrypt(key0[:], key1[:]))
	key0 = keyFromTime(bcdTime[:], 4, t.Serial)
	key0 = [aesBlockSize]byte(aesECBEncrypt(key1[:], key0[:]))
	key1 = keyFromTime(bcdTime[:], 5, t.Serial)
	key1 = [aesBlockSize]byte(aesECBEncrypt(key0[:], key1[:]))
	key0 = keyFromTime(bcdTime[:], 8, t.Serial)
	key0 = [aesBlockSize]byte(aesECBEncrypt(key1[:], key0[:]))

	// key0 now holds 4 consecutive token codes, one per minute mod 4.
	i := (gmt.Minute() & 0x03) << 2
	tokencode := uint32(key0[i])<<24 | uint32(key0[i+1])<<16 |
		uint32(key0[i+2])<<8 | uint32(key0[i+3])

	pin := t.Pin
	pinLen := len(pin)

	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		c := byte(tokencode % 10)
		tokencode /= 10
		if i < pinLen {
			c += pin[pinLen-i-1] - '0'
		}
		out[7-i] = c%10 + '0'
	}
	return string(out), nil
}
