package securid

import (
	"testing"
	"time"
)

func TestGenerateRandomTokenBasics(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}

	if len(tok.Serial) != serialChars {
		t.Errorf("serial length = %d, want %d", len(tok.Serial), serialChars)
	}
	for _, c := range tok.Serial {
		if c < '0' || c > '9' {
			t.Errorf("serial contains non-digit: %q", tok.Serial)
		}
	}

	if !tok.HasDecSeed {
		t.Error("HasDecSeed not set")
	}
	if !tok.HasEncSeed {
		t.Error("HasEncSeed not set")
	}
	if tok.PassRequired() {
		t.Error("a freshly generated token should not be password-protected")
	}
	if tok.DevIDRequired() {
		t.Error("a freshly generated token should not be device-id-protected")
	}
	if !tok.Is128Bit() {
		t.Error("expected Is128Bit true")
	}
	if tok.TokencodeDigits() != 8 {
		t.Errorf("TokencodeDigits = %d, want 8", tok.TokencodeDigits())
	}
}

func TestGenerateRandomTokenVaries(t *testing.T) {
	a, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	if a.DecSeed == b.DecSeed {
		t.Error("two generated tokens had identical seeds")
	}
	if a.Serial == b.Serial {
		t.Error("two generated tokens had identical serials (astronomically unlikely)")
	}
}

func TestGenerateRandomTokenExpirationInFuture(t *testing.T) {
	tok, err := GenerateRandomToken()
	if err != nil {
		t.Fatal(err)
	}
	if days := CheckExpiration(tok, time.Now()); days <= 0 {
		t.Errorf("expected a freshly generated token to expire well in the future, got %d days", days)
	}
}
