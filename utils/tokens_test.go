package utils

import (
	"testing"
	"time"
)

func TestNewManagerRequiresKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.NewJWT("42", time.Hour)
	if err != nil {
		t.Fatalf("NewJWT failed: %v", err)
	}

	sub, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sub != "42" {
		t.Fatalf("expected subject 42, got %q", sub)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	m, _ := NewManager("key-one")
	other, _ := NewManager("key-two")

	token, err := m.NewJWT("7", time.Hour)
	if err != nil {
		t.Fatalf("NewJWT failed: %v", err)
	}

	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse to fail with a different signing key")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	token, err := m.NewJWT("7", -time.Minute)
	if err != nil {
		t.Fatalf("NewJWT failed: %v", err)
	}

	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}

func TestNewRefreshToken(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	first, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}

	second, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct refresh tokens")
	}
}
