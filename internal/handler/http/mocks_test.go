package http

import (
	"context"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/service"
	"github.com/MKhiriev/go-user-keeper/models"
)

// mockUserService implements service.UserService with overridable functions.
type mockUserService struct {
	CreateFunc func(ctx context.Context, email, name, password string) (models.User, error)
	GetFunc    func(ctx context.Context, userID int64) (models.User, error)
	GetAllFunc func(ctx context.Context) ([]models.User, error)
	UpdateFunc func(ctx context.Context, userID int64, name string) (models.User, error)
	DeleteFunc func(ctx context.Context, userID int64) error
}

func (m *mockUserService) Create(ctx context.Context, email, name, password string) (models.User, error) {
	return m.CreateFunc(ctx, email, name, password)
}

func (m *mockUserService) Get(ctx context.Context, userID int64) (models.User, error) {
	return m.GetFunc(ctx, userID)
}

func (m *mockUserService) GetAll(ctx context.Context) ([]models.User, error) {
	return m.GetAllFunc(ctx)
}

func (m *mockUserService) Update(ctx context.Context, userID int64, name string) (models.User, error) {
	return m.UpdateFunc(ctx, userID, name)
}

func (m *mockUserService) Delete(ctx context.Context, userID int64) error {
	return m.DeleteFunc(ctx, userID)
}

// mockAuthService implements service.AuthService with overridable functions.
type mockAuthService struct {
	LoginFunc        func(ctx context.Context, email, password string) (models.Token, error)
	AuthenticateFunc func(ctx context.Context, tokenString string) (models.User, error)
	CreateTokenFunc  func(ctx context.Context, user models.User) (models.Token, error)
	ParseTokenFunc   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.Token, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	return m.AuthenticateFunc(ctx, tokenString)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.CreateTokenFunc(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.ParseTokenFunc(ctx, tokenString)
}

// authPassthrough authenticates any bearer token as the given user,
// for tests that exercise protected routes but not the middleware itself.
func authPassthrough(user models.User) *mockAuthService {
	return &mockAuthService{
		AuthenticateFunc: func(ctx context.Context, tokenString string) (models.User, error) {
			return user, nil
		},
	}
}

func newTestHandler(users *mockUserService, auth *mockAuthService) *Handler {
	return NewHandler(&service.Services{
		UserService: users,
		AuthService: auth,
	}, logger.Nop())
}
