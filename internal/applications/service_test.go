package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"cie-backend/internal/internships"
	"cie-backend/internal/users"
)

func newTestService(t *testing.T) (*Service, internships.Internship) {
	t.Helper()
	ctx := context.Background()

	usersRepo := users.NewMemoryRepo()
	seed := []users.User{
		{ID: "admin-1", Email: "admin@uni.edu", Name: "Admin", Role: users.RoleAdmin},
		{ID: "faculty-1", Email: "prof@uni.edu", Name: "Prof", Role: users.RoleFaculty},
		{ID: "student-1", Email: "alice@uni.edu", Name: "Alice", Role: users.RoleStudent},
		{ID: "student-2", Email: "bob@uni.edu", Name: "Bob", Role: users.RoleStudent},
	}
	for _, u := range seed {
		if err := usersRepo.Upsert(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	usersSvc := users.NewService(usersRepo)

	internRepo := internships.NewMemoryRepo()
	posting := internships.Internship{
		ID:        "intern-1",
		Title:     "Backend Intern",
		FacultyID: "faculty-1",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}
	if err := internRepo.Create(ctx, posting); err != nil {
		t.Fatalf("seed internship: %v", err)
	}

	svc := &Service{
		Repo:        NewMemoryRepo(),
		Users:       usersSvc,
		Internships: &internships.Service{Repo: internRepo, Users: usersSvc},
	}
	return svc, posting
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	svc, posting := newTestService(t)

	app, err := svc.Apply(context.Background(), "student-1", posting.ID, "resumes/alice.pdf")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if app.Status != StatusPending {
		t.Fatalf("want PENDING, got %s", app.Status)
	}

	if _, err := svc.Apply(context.Background(), "student-1", posting.ID, "resumes/alice.pdf"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestApplyRejectsNonStudentsAndUnknownPostings(t *testing.T) {
	svc, posting := newTestService(t)

	if _, err := svc.Apply(context.Background(), "faculty-1", posting.ID, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if _, err := svc.Apply(context.Background(), "student-1", "ghost", ""); !errors.Is(err, internships.ErrNotFound) {
		t.Fatalf("want internships.ErrNotFound, got %v", err)
	}
}

func TestListForStudentScoping(t *testing.T) {
	svc, posting := newTestService(t)
	if _, err := svc.Apply(context.Background(), "student-1", posting.ID, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	own, err := svc.ListForStudent(context.Background(), "student-1", "student-1")
	if err != nil || len(own) != 1 {
		t.Fatalf("own list: %v, len %d", err, len(own))
	}

	if _, err := svc.ListForStudent(context.Background(), "student-2", "student-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-student list: want ErrForbidden, got %v", err)
	}

	staff, err := svc.ListForStudent(context.Background(), "faculty-1", "student-1")
	if err != nil || len(staff) != 1 {
		t.Fatalf("faculty list: %v, len %d", err, len(staff))
	}
}

func TestSetStatusRestrictedToDecisions(t *testing.T) {
	svc, posting := newTestService(t)
	app, err := svc.Apply(context.Background(), "student-1", posting.ID, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), "student-1", app.ID, StatusAccepted); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student decision: want ErrForbidden, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), "faculty-1", app.ID, StatusPending); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("PENDING decision: want ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), "faculty-1", app.ID, "WAITLISTED"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bogus decision: want ErrInvalidStatus, got %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), "faculty-1", app.ID, "accepted")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if updated.Status != StatusAccepted {
		t.Fatalf("want ACCEPTED, got %s", updated.Status)
	}
}
