package store

import (
	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

// RepositoryManager hands out repositories bound to an arbitrary [Querier].
// Services use it to obtain a repository over the pooled connection for plain
// reads and over a transaction handle inside [DB.WithTx] for mutating flows.
type RepositoryManager interface {
	Users(q Querier) UserRepository
}

type repositoryManager struct {
	logger *logger.Logger
}

// NewRepositoryManager constructs a [RepositoryManager] that wires the given
// logger into every repository it creates.
func NewRepositoryManager(logger *logger.Logger) RepositoryManager {
	return &repositoryManager{logger: logger}
}

func (m *repositoryManager) Users(q Querier) UserRepository {
	return NewUserRepository(q, m.logger)
}
