package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoUpsertDefaultsRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u-1", "alice@uni.edu", "Alice", RoleStudent, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), User{
		ID:    "u-1",
		Email: "alice@uni.edu",
		Name:  "Alice",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "picture_url", "created_at", "updated_at"}).
		AddRow("u-1", "prof@uni.edu", "Prof", RoleFaculty, nil, now, now)

	mock.ExpectQuery("SELECT id, email, name, role, picture_url, created_at, updated_at").
		WithArgs("u-1").
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Role != RoleFaculty || user.Email != "prof@uni.edu" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, email, name, role, picture_url, created_at, updated_at").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "picture_url", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPGRepoListFiltersByRole(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "picture_url", "created_at", "updated_at"}).
		AddRow("u-1", "a@uni.edu", "A", RoleStudent, nil, now, now).
		AddRow("u-2", "b@uni.edu", "B", RoleStudent, nil, now, now)

	mock.ExpectQuery("SELECT id, email, name, role, picture_url, created_at, updated_at").
		WithArgs(RoleStudent).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), RoleStudent)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2 users, got %d", len(list))
	}
}
