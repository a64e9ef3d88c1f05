package securid

// DecryptSeed decrypts t.EncSeed into t.DecSeed, populating HasDecSeed on
// success. pass and devid are only consulted for the protection flags
// actually set on t (FL_PASSPROT / FL_SNPROT); an empty string where one
// is required fails with ErrMissingPassword before any cryptography runs.
func DecryptSeed(t *Token, pass, devid string) error {
	const op = "DecryptSeed"

	if t.PassRequired() && pass == "" {
		return newError(op, ErrMissingPassword)
	}
	if t.DevIDRequired() && devid == "" {
		return newError(op, ErrMissingPassword)
	}

	usePass := ""
	if t.PassRequired() {
		usePass = pass
	}
	useDevID := ""
	if t.DevIDRequired() {
		useDevID = devid
	}

	keyHash, deviceIDHash, err := deriveKeyHash(usePass, useDevID, t.IsSmartphone)
	if err != nil {
		return err
	}

	if t.DevIDRequired() && deviceIDHash != t.DeviceIDHash {
		return newError(op, ErrBadDevID)
	}

	dec := aesECBDecrypt(keyHash[:], t.EncSeed[:])
	copy(t.DecSeed[:], dec)

	computedMAC := shortMAC(t.DecSeed[:])
	if computedMAC != t.DecSeedHash {
		t.Wipe()
		return newError(op, ErrDecryptFailed)
	}
	t.HasDecSeed = true

	wipe(keyHash[:])
	return nil
}
