package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request carries empty or
	// otherwise unusable fields (e.g. empty email or password, or a password
	// exceeding the bcrypt input limit).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Login for both an unknown email
	// and a wrong password, so callers cannot tell which case occurred.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenCreationFailed is returned when JWT signing fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is returned for any token that cannot be
	// resolved to an existing user: expired, forged, malformed, or referring
	// to a deleted account. Callers must treat all cases uniformly.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
