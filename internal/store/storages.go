package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

// Storages aggregates the database handle and all repositories wired over it.
// The embedded UserRepository is bound to the connection pool; transactional
// code paths construct short-lived repositories over [DB.WithTx] instead.
type Storages struct {
	DB             *DB
	UserRepository UserRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and returns
// the fully wired [Storages] container.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		DB:             db,
		UserRepository: NewUserRepository(db, log),
	}, nil
}
