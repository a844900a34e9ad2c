package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" || hash == "pw1" {
		t.Error("expected a non-empty hash distinct from the plaintext")
	}

	if !VerifyPassword("pw1", hash) {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword("pw2", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	long := strings.Repeat("a", 73)

	_, err := HashPassword(long)
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestHashPassword_MaxLengthAccepted(t *testing.T) {
	boundary := strings.Repeat("a", 72)

	hash, err := HashPassword(boundary)
	if err != nil {
		t.Fatalf("unexpected error for 72-byte password: %v", err)
	}
	if !VerifyPassword(boundary, hash) {
		t.Error("expected 72-byte password to verify")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("pw1", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail verification")
	}
	if VerifyPassword("pw1", "") {
		t.Error("expected empty hash to fail verification")
	}
}
