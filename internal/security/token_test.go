package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	userID, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("ParseToken() userID = %d, want 42", userID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected error when verifying with a different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := tm.ParseToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestGenerateSessionIDUnique(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()
	if a == b {
		t.Error("session IDs should be unique")
	}
	if len(a) != 36 {
		t.Errorf("session ID should be a UUID string, got %q", a)
	}
}
