package securid

import "testing"

func TestDecryptSeedMissingPassword(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	enc, err := EncodeToken(tok, "hunter2", "")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeToken(enc)
	if err != nil {
		t.Fatal(err)
	}

	err = DecryptSeed(dec, "", "")
	if !IsMissingPassword(err) {
		t.Fatalf("expected IsMissingPassword, got %v", err)
	}
}

func TestDecryptSeedMissingDevID(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	enc, err := EncodeToken(tok, "", "1234567890")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeToken(enc)
	if err != nil {
		t.Fatal(err)
	}

	err = DecryptSeed(dec, "", "")
	if !IsMissingPassword(err) {
		t.Fatalf("expected IsMissingPassword, got %v", err)
	}
}

func TestDecryptSeedBadDevID(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	enc, err := EncodeToken(tok, "", "1234567890")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeToken(enc)
	if err != nil {
		t.Fatal(err)
	}

	err = DecryptSeed(dec, "", "0987654321")
	if !IsBadDevID(err) {
		t.Fatalf("expected IsBadDevID, got %v", err)
	}
}

func TestDecryptSeedRoundTrip(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	wantSeed := tok.DecSeed

	enc, err := EncodeToken(tok, "correct horse", "5551234567")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeToken(enc)
	if err != nil {
		t.Fatal(err)
	}

	if err := DecryptSeed(dec, "correct horse", "5551234567"); err != nil {
		t.Fatalf("DecryptSeed: %v", err)
	}
	if dec.DecSeed != wantSeed {
		t.Fatal("decrypted seed does not match the original random seed")
	}
	if !dec.HasDecSeed {
		t.Fatal("HasDecSeed not set after successful DecryptSeed")
	}
}

func TestDecryptSeedWipesOnFailure(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	enc, err := EncodeToken(tok, "hunter2", "")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeToken(enc)
	if err != nil {
		t.Fatal(err)
	}

	err = DecryptSeed(dec, "wrong password", "")
	if !IsDecryptFailed(err) {
		t.Fatalf("expected IsDecryptFailed, got %v", err)
	}
	if dec.HasDecSeed {
		t.Fatal("HasDecSeed set despite failed decryption")
	}
	var zero [aesBlockSize]byte
	if dec.DecSeed != zero {
		t.Fatal("DecSeed not wiped after failed decryption")
	}
}
