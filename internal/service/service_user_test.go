package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/internal/store/mocks"
	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeDatabase satisfies [Database] for unit tests. WithTx runs the callback
// directly, without a real transaction; the embedded Querier is never touched
// because the fake repository manager ignores its argument.
type fakeDatabase struct {
	store.Querier
}

func (f *fakeDatabase) WithTx(ctx context.Context, fn func(ctx context.Context, tx store.Querier) error) error {
	return fn(ctx, f)
}

// fakeRepoManager hands out the same repository regardless of the Querier.
type fakeRepoManager struct {
	users store.UserRepository
}

func (m *fakeRepoManager) Users(q store.Querier) store.UserRepository {
	return m.users
}

func newTestUserService(t *testing.T) (UserService, *mocks.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	svc := NewUserService(&fakeDatabase{}, &fakeRepoManager{users: repo}, logger.Nop())
	return svc, repo
}

func TestUserService_Create_Success(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().
		FindByEmail(gomock.Any(), "a@x.com").
		Return(models.User{}, store.ErrUserNotFound)

	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			// The service must hand the store a bcrypt hash, never plaintext.
			require.NotEqual(t, "pw1", user.PasswordHash)
			require.True(t, utils.VerifyPassword("pw1", user.PasswordHash))

			user.UserID = 1
			user.CreatedAt = time.Now()
			user.UpdatedAt = user.CreatedAt
			return user, nil
		})

	created, err := svc.Create(ctx, "a@x.com", "Alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "Alice", created.Name)
}

func TestUserService_Create_EmailTaken(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().
		FindByEmail(gomock.Any(), "a@x.com").
		Return(models.User{UserID: 1, Email: "a@x.com"}, nil)

	_, err := svc.Create(ctx, "a@x.com", "Bob", "pw2")
	require.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestUserService_Create_EmailTakenUnderRace(t *testing.T) {
	// The read check passes but the unique constraint fires on insert,
	// simulating a concurrent registration with the same email.
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().
		FindByEmail(gomock.Any(), "a@x.com").
		Return(models.User{}, store.ErrUserNotFound)

	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.Create(ctx, "a@x.com", "Bob", "pw2")
	require.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestUserService_Create_InvalidData(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "Alice", "pw1")
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Create(ctx, "a@x.com", "Alice", "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_Create_PasswordTooLong(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Create(ctx, "a@x.com", "Alice", string(long))
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_Get(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	want := models.User{UserID: 1, Email: "a@x.com", Name: "Alice"}
	repo.EXPECT().
		FindByID(gomock.Any(), int64(1)).
		Return(want, nil)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().
		FindByID(gomock.Any(), int64(404)).
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Get(ctx, 404)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_GetAll(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	want := []models.User{
		{UserID: 1, Email: "a@x.com"},
		{UserID: 2, Email: "b@x.com"},
	}
	repo.EXPECT().
		FindAll(gomock.Any()).
		Return(want, nil)

	got, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_Update_ChangesOnlyName(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	created := time.Now().Add(-time.Hour)
	existing := models.User{
		UserID:       1,
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: "hash",
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	repo.EXPECT().
		FindByID(gomock.Any(), int64(1)).
		Return(existing, nil)

	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "Renamed", user.Name)
			assert.Equal(t, existing.Email, user.Email)
			assert.Equal(t, existing.PasswordHash, user.PasswordHash)
			assert.Equal(t, existing.UserID, user.UserID)
			assert.Equal(t, existing.CreatedAt, user.CreatedAt)

			user.UpdatedAt = time.Now()
			return user, nil
		})

	updated, err := svc.Update(ctx, 1, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().
		FindByID(gomock.Any(), int64(404)).
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Update(ctx, 404, "Renamed")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	existing := models.User{UserID: 1, Email: "a@x.com"}
	repo.EXPECT().
		FindByID(gomock.Any(), int64(1)).
		Return(existing, nil)
	repo.EXPECT().
		Delete(gomock.Any(), existing).
		Return(nil)

	require.NoError(t, svc.Delete(ctx, 1))
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().
		FindByID(gomock.Any(), int64(404)).
		Return(models.User{}, store.ErrUserNotFound)

	err := svc.Delete(ctx, 404)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_Create_UnexpectedStoreError(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	repo.EXPECT().
		FindByEmail(gomock.Any(), "a@x.com").
		Return(models.User{}, dbErr)

	_, err := svc.Create(ctx, "a@x.com", "Alice", "pw1")
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrEmailAlreadyExists)
}
