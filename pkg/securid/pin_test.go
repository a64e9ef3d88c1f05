package securid

import "testing"

func TestPinFormatOK(t *testing.T) {
	good := []string{"1234", "12345", "123456", "1234567", "12345678"}
	for _, p := range good {
		if err := PinFormatOK(p); err != nil {
			t.Errorf("PinFormatOK(%q) = %v, want nil", p, err)
		}
	}

	bad := []string{"", "123", "123456789", "12a4", "abcd"}
	for _, p := range bad {
		if err := PinFormatOK(p); err == nil {
			t.Errorf("PinFormatOK(%q) = nil, want an error", p)
		}
	}
}

func TestEncryptDecryptPINRoundTrip(t *testing.T) {
	pins := []string{"1234", "0000", "98765432"}
	for _, pin := range pins {
		enc, err := EncryptPIN(pin, "hunter2")
		if err != nil {
			t.Fatalf("EncryptPIN(%q): %v", pin, err)
		}
		if len(enc) != aesBlockSize*2*2 {
			t.Fatalf("encrypted PIN length = %d, want %d", len(enc), aesBlockSize*2*2)
		}

		got, err := DecryptPIN(enc, "hunter2")
		if err != nil {
			t.Fatalf("DecryptPIN: %v", err)
		}
		if got != pin {
			t.Errorf("round trip: got %q, want %q", got, pin)
		}
	}
}

func TestEncryptPINIsRandomized(t *testing.T) {
	a, err := EncryptPIN("1234", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptPIN("1234", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two encryptions of the same PIN produced identical ciphertext (IV not randomized)")
	}
}

func TestDecryptPINWrongPassword(t *testing.T) {
	enc, err := EncryptPIN("1234", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecryptPIN(enc, "wrong password"); err == nil {
		t.Fatal("expected an error decrypting with the wrong password")
	}
}

func TestDecryptPINBadLength(t *testing.T) {
	_, err := DecryptPIN("deadbeef", "hunter2")
	if !IsBadLen(err) {
		t.Fatalf("expected IsBadLen, got %v", err)
	}
}

func TestEncryptPINRejectsBadFormat(t *testing.T) {
	_, err := EncryptPIN("abcd", "hunter2")
	if err == nil {
		t.Fatal("expected an error encrypting a non-numeric PIN")
	}
}
