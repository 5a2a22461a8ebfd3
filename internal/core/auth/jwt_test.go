package auth

import (
	"errors"
	"testing"
	"time"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("super-secret"), Issuer: "go-task-manager", TTL: ttl}
}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	j := newJWTer(time.Hour)
	tok, err := j.Issue("user-123", "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UID != "user-123" {
		t.Fatalf("uid mismatch: got %q want %q", claims.UID, "user-123")
	}
	if claims.Role != "admin" {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, "admin")
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	j := newJWTer(-1 * time.Second)
	tok, err := j.Issue("u1", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = j.Parse(tok)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	j := newJWTer(time.Hour)
	tok, err := j.Issue("u2", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := &JWTer{Secret: []byte("wrong-secret"), Issuer: "go-task-manager", TTL: time.Hour}
	_, err = other.Parse(tok)
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	j := newJWTer(time.Hour)
	_, err := j.Parse("not.a.jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
