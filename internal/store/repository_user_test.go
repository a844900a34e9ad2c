package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumns = []string{"user_id", "email", "name", "password_hash", "created_at", "updated_at"}

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewUserRepository(db, logger.Nop()), mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSave_InsertSuccess(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: "hash",
	}

	now := time.Now()
	rows := sqlmock.
		NewRows(userColumns).
		AddRow(1, user.Email, user.Name, user.PasswordHash, now, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.Name, user.PasswordHash).
		WillReturnRows(rows)

	saved, err := repo.Save(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", saved.UserID)
	}
	if saved.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, saved.Email)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("expected store-assigned timestamps to be populated")
	}
}

func TestSave_InsertUniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "a@x.com"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Save(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSave_UpdateSuccess(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	created := time.Now().Add(-time.Hour)
	updated := time.Now()
	user := models.User{
		UserID:       7,
		Email:        "a@x.com",
		Name:         "Renamed",
		PasswordHash: "hash",
		CreatedAt:    created,
	}

	rows := sqlmock.
		NewRows(userColumns).
		AddRow(user.UserID, user.Email, user.Name, user.PasswordHash, created, updated)

	mock.ExpectQuery("UPDATE users").
		WithArgs(user.UserID, user.Email, user.Name, user.PasswordHash).
		WillReturnRows(rows)

	saved, err := repo.Save(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Renamed" {
		t.Errorf("expected name Renamed, got %s", saved.Name)
	}
	if !saved.UpdatedAt.After(saved.CreatedAt) {
		t.Error("expected updated_at to advance past created_at")
	}
}

func TestSave_UpdateMissingUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Save(ctx, models.User{UserID: 404, Email: "a@x.com"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSave_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.Save(ctx, models.User{Email: "a@x.com"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns).
		AddRow(1, "a@x.com", "Alice", "hash", now, now)

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	found, err := repo.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", found.Email)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(ctx, 404)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns).
		AddRow(1, "a@x.com", "Alice", "hash", now, now)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("a@x.com").
		WillReturnRows(rows)

	found, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", found.UserID)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(ctx, "missing@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindAll_OrderedByID(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns).
		AddRow(1, "a@x.com", "Alice", "hash", now, now).
		AddRow(2, "b@x.com", "Bob", "hash", now, now)

	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(rows)

	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].UserID != 1 || users[1].UserID != 2 {
		t.Error("expected users ordered by id")
	}
}

func TestFindAll_Empty(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(ctx, models.User{UserID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(ctx, models.User{UserID: 404})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
