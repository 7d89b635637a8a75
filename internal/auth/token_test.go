package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	tok, exp, err := tm.GenerateToken("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiry not about one hour out: %v", until)
	}

	claims, err := tm.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("userId mismatch: got %q", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Second}

	tok, _, err := tm.GenerateToken("u1", "u1@x.com")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := tm.ParseToken(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager("right-secret", time.Hour).GenerateToken("u2", "u2@x.com")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := NewTokenManager("wrong-secret", time.Hour).ParseToken(tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}
