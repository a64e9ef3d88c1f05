package securid

// Flag bits packed into Token.Flags. The single-bit flags below (password
// protection, device-id protection, key length) and the field layout
// (PIN mode, tokencode digit count, seconds-per-tokencode) are pinned down
// by spec.md; the exact bit positions are this package's own self-consistent
// choice documented in DESIGN.md, since the upstream header defining them
// was not available to ground against.
const (
	flagPassProt = 1 << 0 // seed encrypted under a password-derived key
	flagSNProt   = 1 << 1 // seed encrypted under a device-id-derived key
	flag128Bit   = 1 << 2 // AES-128 seed (always set by this package)
	flagFeat3    = 1 << 3
	flagFeat4    = 1 << 4
	flagFeat5    = 1 << 5
	flagFeat6    = 1 << 6

	fldPinModeShift = 7
	fldPinModeMask  = 0x3 << fldPinModeShift // 2 bits: 0-3

	fldDigitShift = 9
	fldDigitMask  = 0x7 << fldDigitShift // 3 bits: digit count - 1

	fldNumSecondsShift = 12
	fldNumSecondsMask  = 0x1 << fldNumSecondsShift // 0 = 30s, 1 = 60s
)

// PinRequired reports whether the token's PIN mode demands a PIN be folded
// into the tokencode (mode >= 2), per securid_pin_required.
func (t *Token) PinRequired() bool {
	return (t.Flags&fldPinModeMask)>>fldPinModeShift >= 2
}

// PassRequired reports whether the seed is password-protected.
func (t *Token) PassRequired() bool {
	return t.Flags&flagPassProt != 0
}

// DevIDRequired reports whether the seed is device-id-protected.
func (t *Token) DevIDRequired() bool {
	return t.Flags&flagSNProt != 0
}

// TokencodeDigits returns the number of digits in a computed tokencode.
func (t *Token) TokencodeDigits() int {
	return int((t.Flags&fldDigitMask)>>fldDigitShift) + 1
}

// SecondsPerTokencode returns the tokencode's rotation period in seconds,
// either 30 or 60.
func (t *Token) SecondsPerTokencode() int {
	if t.Flags&fldNumSecondsMask != 0 {
		return 60
	}
	return 30
}

// Is128Bit reports whether the token uses a 128-bit seed (always true for
// tokens this package decodes or creates).
func (t *Token) Is128Bit() bool {
	return t.Flags&flag128Bit != 0
}
