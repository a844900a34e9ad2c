package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently ignores input beyond 72 bytes, so longer passwords are
// rejected outright instead of being truncated.
const maxPasswordLength = 72

// ErrPasswordTooLong is returned by HashPassword when the plaintext password
// exceeds bcrypt's 72-byte input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword hashes the given plaintext password with bcrypt at the default
// cost and returns the encoded hash string.
//
// Returns ErrPasswordTooLong if the password is longer than 72 bytes.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the given
// bcrypt hash. A malformed hash yields false, never a panic or an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
