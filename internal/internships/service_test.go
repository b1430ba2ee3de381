package internships

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cie-backend/internal/shared/storage/object/local"
	"cie-backend/internal/users"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	usersRepo := users.NewMemoryRepo()
	ctx := context.Background()
	seed := []users.User{
		{ID: "admin-1", Email: "admin@uni.edu", Name: "Admin", Role: users.RoleAdmin},
		{ID: "faculty-1", Email: "prof@uni.edu", Name: "Prof", Role: users.RoleFaculty},
		{ID: "student-1", Email: "alice@uni.edu", Name: "Alice", Role: users.RoleStudent},
	}
	for _, u := range seed {
		if err := usersRepo.Upsert(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	return &Service{
		Repo:  NewMemoryRepo(),
		Users: users.NewService(usersRepo),
		Store: local.New(t.TempDir()),
	}
}

func baseInput() CreateInput {
	return CreateInput{
		Title:     "Backend Intern",
		Duration:  "3 months",
		Skills:    []string{"Go", "SQL"},
		FacultyID: "faculty-1",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAdminOnly(t *testing.T) {
	svc := newTestService(t)

	for _, actor := range []string{"faculty-1", "student-1"} {
		if _, err := svc.Create(context.Background(), actor, baseInput()); !errors.Is(err, ErrForbidden) {
			t.Fatalf("actor %s: want ErrForbidden, got %v", actor, err)
		}
	}

	i, err := svc.Create(context.Background(), "admin-1", baseInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if i.Title != "Backend Intern" || len(i.Skills) != 2 {
		t.Fatalf("unexpected internship: %+v", i)
	}
}

func TestCreateStoresDescription(t *testing.T) {
	svc := newTestService(t)

	in := baseInput()
	in.Description = strings.NewReader("%PDF-1.4 fake description")
	i, err := svc.Create(context.Background(), "admin-1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if i.DescriptionKey == "" {
		t.Fatal("description key not recorded")
	}

	rc, err := svc.OpenDescription(context.Background(), i.ID)
	if err != nil {
		t.Fatalf("open description: %v", err)
	}
	rc.Close()
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	svc := newTestService(t)

	in := baseInput()
	in.StartDate, in.EndDate = in.EndDate, in.StartDate
	if _, err := svc.Create(context.Background(), "admin-1", in); err == nil {
		t.Fatal("inverted dates must be rejected")
	}
}

func TestListResolvesFacultyName(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Create(context.Background(), "admin-1", baseInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].FacultyName != "Prof" {
		t.Fatalf("faculty name not resolved: %+v", list)
	}
}

func TestDeleteRemovesPostingAndObject(t *testing.T) {
	svc := newTestService(t)
	in := baseInput()
	in.Description = strings.NewReader("%PDF-1.4 fake description")
	i, err := svc.Create(context.Background(), "admin-1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Delete(context.Background(), "faculty-1", i.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	leftover, err := svc.Delete(context.Background(), "admin-1", i.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if leftover != "" {
		t.Fatalf("object removal should succeed locally, leftover %q", leftover)
	}
	if _, err := svc.Get(context.Background(), i.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("posting must be gone, got %v", err)
	}
}
