package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
)

// userService is the concrete implementation of [UserService].
//
// Reads go straight through a repository bound to the connection pool.
// Mutating flows (Create, Update, Delete) run inside [Database.WithTx] so
// that every request-scoped unit of work commits or rolls back atomically.
type userService struct {
	db     Database
	repos  store.RepositoryManager
	logger *logger.Logger
}

// NewUserService constructs a [UserService] over the given database handle
// and repository manager.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewUserService(db Database, repos store.RepositoryManager, logger *logger.Logger) UserService {
	return &userService{
		db:     db,
		repos:  repos,
		logger: logger,
	}
}

// Create registers a new user account.
//
// The plaintext password is hashed with bcrypt before anything touches the
// store. The duplicate-email read check inside the transaction produces a
// friendly error on the common path; the unique constraint on users.email is
// what actually guarantees uniqueness under concurrent registration, and its
// violation maps to the same [store.ErrEmailAlreadyExists].
func (s *userService) Create(ctx context.Context, email, name, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	var created models.User
	err = s.db.WithTx(ctx, func(ctx context.Context, tx store.Querier) error {
		repo := s.repos.Users(tx)

		_, err := repo.FindByEmail(ctx, email)
		if err == nil {
			return store.ErrEmailAlreadyExists
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return err
		}

		created, err = repo.Save(ctx, models.User{
			Email:        email,
			Name:         name,
			PasswordHash: passwordHash,
		})
		return err
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Get returns the user with the given id.
func (s *userService) Get(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.repos.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// GetAll returns every registered user ordered by id.
func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.repos.Users(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// Update changes only the user's display name. Email, password hash, id and
// creation timestamp are carried through unchanged; the store refreshes
// UpdatedAt as part of the write.
func (s *userService) Update(ctx context.Context, userID int64, name string) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	err := s.db.WithTx(ctx, func(ctx context.Context, tx store.Querier) error {
		repo := s.repos.Users(tx)

		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Name = name
		updated, err = repo.Save(ctx, user)
		return err
	})
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// Delete permanently removes the user with the given id.
func (s *userService) Delete(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	err := s.db.WithTx(ctx, func(ctx context.Context, tx store.Querier) error {
		repo := s.repos.Users(tx)

		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		return repo.Delete(ctx, user)
	})
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}
