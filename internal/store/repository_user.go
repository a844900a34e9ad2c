package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user record persistence and lookup against the "users" table.
//
// It holds a [Querier] rather than a concrete pool, so the same instance type
// works both over *sql.DB and inside a transaction started by [DB.WithTx].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     Querier
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// [Querier] and logger.
func NewUserRepository(db Querier, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindByID retrieves a user record by its primary key.
//
// Error handling:
//   - sql.ErrNoRows → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Scan(&user.UserID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user record whose email matches the given value.
// The comparison is case-sensitive.
//
// Error handling:
//   - sql.ErrNoRows → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	if err := row.Scan(&user.UserID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindByEmail").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindAll returns all persisted user records ordered by id.
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findAllUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error: executing query")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.UserID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.FindAll").Msg("error: scanning rows")
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error: iterating rows")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return users, nil
}

// Save persists the given user and returns the fully populated [models.User]
// with store-assigned fields.
//
// When user.UserID is zero the record is inserted and receives a new id and
// CreatedAt; otherwise the existing row is updated and UpdatedAt refreshed.
// Both statements use a RETURNING clause, so the caller always receives the
// canonical database representation of the record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - sql.ErrNoRows on update → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Save(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var row *sql.Row
	if user.UserID == 0 {
		row = r.db.QueryRowContext(ctx, createUser, user.Email, user.Name, user.PasswordHash)
	} else {
		row = r.db.QueryRowContext(ctx, updateUser, user.UserID, user.Email, user.Name, user.PasswordHash)
	}

	var saved models.User
	if err := row.Scan(&saved.UserID, &saved.Email, &saved.Name, &saved.PasswordHash, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		switch {
		case postgresError(err) == pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		case errors.Is(err, sql.ErrNoRows):
			return models.User{}, ErrUserNotFound
		default:
			log.Err(err).Str("func", "*userRepository.Save").Msg("error: saving user")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// Delete permanently removes the user's row from the "users" table.
//
// Error handling:
//   - zero rows affected → [ErrUserNotFound].
//   - Any driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Delete(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
