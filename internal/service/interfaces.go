package service

import (
	"context"

	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/models"
)

// Database is the persistence handle required by the services: direct query
// access for reads plus transactional execution for mutating flows.
// *store.DB satisfies this interface.
type Database interface {
	store.Querier

	// WithTx runs fn inside a transaction, committing on success and rolling
	// back on error or panic.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx store.Querier) error) error
}

// UserService implements the business rules for the User entity.
// All failures are sentinel errors (see errors.go and package store) matched
// with errors.Is; raw persistence errors never cross this boundary unless
// they have no domain meaning.
type UserService interface {
	// Create registers a new user. Fails with store.ErrEmailAlreadyExists if
	// the email is taken, ErrInvalidDataProvided on empty email/password or a
	// password exceeding the hash input limit.
	Create(ctx context.Context, email, name, password string) (models.User, error)

	// Get returns the user with the given id or store.ErrUserNotFound.
	Get(ctx context.Context, userID int64) (models.User, error)

	// GetAll returns every registered user ordered by id.
	GetAll(ctx context.Context) ([]models.User, error)

	// Update changes the user's display name, leaving all other fields
	// untouched, and returns the persisted record.
	Update(ctx context.Context, userID int64, name string) (models.User, error)

	// Delete permanently removes the user. Fails with store.ErrUserNotFound
	// if the user does not exist.
	Delete(ctx context.Context, userID int64) error
}

// AuthService implements the authentication flow: credential verification,
// token issuing, and resolving tokens back to authenticated users.
type AuthService interface {
	// Login verifies the email/password pair and mints a JWT for the user.
	// Unknown email and wrong password both fail with ErrInvalidCredentials,
	// indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (models.Token, error)

	// Authenticate resolves a raw token string to the user it asserts.
	// Fails with ErrTokenIsExpiredOrInvalid when the token cannot be
	// validated or the user no longer exists.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and extracts the user id.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
