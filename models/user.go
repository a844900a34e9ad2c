package models

import "time"

// User represents an account entity used for authentication and user
// management. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the unique identifier of the user, assigned by the store
	// on creation and immutable thereafter.
	UserID int64 `json:"id"`

	// Email is the unique user email used during authentication.
	// Uniqueness is enforced by the storage layer (case-sensitive).
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never exposed
	// via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Assigned by the store on insert.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last mutation of the record.
	// Refreshed by the store on every update.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
