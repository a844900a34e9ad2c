package service

import (
	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
)

// Services aggregates all business-logic services the transport layer
// depends on.
type Services struct {
	UserService UserService
	AuthService AuthService
}

// NewServices wires the services over the given storages and configuration.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	repos := store.NewRepositoryManager(logger)

	return &Services{
		UserService: NewUserService(storages.DB, repos, logger),
		AuthService: NewAuthService(storages.DB, repos, cfg.Auth, logger),
	}
}
