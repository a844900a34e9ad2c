package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-user-keeper/models"
)

// Querier is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy this interface, which lets the same
// repository code run either directly against the pool or inside a
// transaction opened by [DB.WithTx].
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepository provides persistence for user records.
// Absence of a record is reported via [ErrUserNotFound]; it is an expected
// outcome, not a system fault. No application-level validation lives here.
type UserRepository interface {
	// FindByID returns the user with the given id or ErrUserNotFound.
	FindByID(ctx context.Context, userID int64) (models.User, error)

	// FindByEmail returns the user with the given email or ErrUserNotFound.
	// The lookup is case-sensitive.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindAll returns every persisted user ordered by id.
	FindAll(ctx context.Context) ([]models.User, error)

	// Save inserts the user when UserID is zero and updates the existing row
	// otherwise. The returned value carries all store-assigned fields:
	// UserID and CreatedAt on insert, a refreshed UpdatedAt on every call.
	Save(ctx context.Context, user models.User) (models.User, error)

	// Delete permanently removes the user's row.
	// Returns ErrUserNotFound if no row was deleted.
	Delete(ctx context.Context, user models.User) error
}
