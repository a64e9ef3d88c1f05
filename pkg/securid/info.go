package securid

import (
	"encoding/hex"
	"strconv"
	"time"
)

// TokenInfoEntry is one human-readable (key, value) pair describing a
// Token, in the fixed order TokenInfo emits them.
type TokenInfoEntry struct {
	Key   string
	Value string
}

// TokenInfo returns an ordered, human-readable description of t, the
// sequence of fields a front-end would display. This replaces the
// original's per-field callback with a plain slice, since this package has
// no interactive front-end of its own to drive incrementally.
func TokenInfo(t *Token) []TokenInfoEntry {
	var out []TokenInfoEntry
	add := func(k, v string) { out = append(out, TokenInfoEntry{k, v}) }

	add("Serial number", t.Serial)

	if t.HasDecSeed {
		add("Decrypted seed", hex.EncodeToString(t.DecSeed[:]))
	}
	if t.HasEncSeed {
		add("Encrypted seed", hex.EncodeToString(t.EncSeed[:]))
		add("Encrypted w/password", yesNo(t.PassRequired()))
		add("Encrypted w/devid", yesNo(t.DevIDRequired()))
	}

	expUnix := SecurIDEpoch + (int64(t.ExpDate)+1)*60*60*24
	add("Expiration date", time.Unix(expUnix, 0).UTC().Format("2006/01/02"))

	add("Key length", keyLengthLabel(t))
	add("Tokencode digits", strconv.Itoa(t.TokencodeDigits()))
	add("PIN mode", strconv.Itoa(int(t.Flags&fldPinModeMask)>>fldPinModeShift))
	add("Seconds per tokencode", secondsPerTokencodeLabel(t))

	add("Feature bit 3", yesNo(t.Flags&flagFeat3 != 0))
	add("Feature bit 4", yesNo(t.Flags&flagFeat4 != 0))
	add("Feature bit 5", yesNo(t.Flags&flagFeat5 != 0))
	add("Feature bit 6", yesNo(t.Flags&flagFeat6 != 0))

	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func keyLengthLabel(t *Token) string {
	if t.Is128Bit() {
		return "128"
	}
	return "64"
}

func secondsPerTokencodeLabel(t *Token) string {
	switch (t.Flags & fldNumSecondsMask) >> fldNumSecondsShift {
	case 0:
		return "30"
	case 1:
		return "60"
	default:
		return "unknown"
	}
}

// CheckExpiration returns the number of whole days until t expires as of
// now, with a 12-hour grace period folded in; zero or positive means still
// valid, negative means expired.
func CheckExpiration(t *Token, now time.Time) int {
	const halfDay = 12 * 60 * 60
	const wholeDay = 24 * 60 * 60

	expUnix := SecurIDEpoch + (int64(t.ExpDate)+1)*wholeDay
	expUnix += halfDay
	expUnix -= now.Unix()
	return int(expUnix / wholeDay)
}
