package feedback

import (
	"context"
	"errors"
	"testing"

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
	return &Service{Repo: NewMemoryRepo(), Users: users.NewService(usersRepo)}
}

func TestSubmitCreatesOpenTicket(t *testing.T) {
	svc := newTestService(t)

	ticket, err := svc.Submit(context.Background(), "student-1", "facilities", "  Projector broken in Lab 2  ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ticket.Status != StatusOpen {
		t.Fatalf("want OPEN, got %s", ticket.Status)
	}
	if ticket.Message != "Projector broken in Lab 2" {
		t.Fatalf("message not trimmed: %q", ticket.Message)
	}

	if _, err := svc.Submit(context.Background(), "student-1", "facilities", "   "); err == nil {
		t.Fatal("empty message must be rejected")
	}
	if _, err := svc.Submit(context.Background(), "ghost", "facilities", "hi"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("want users.ErrNotFound, got %v", err)
	}
}

func TestListScopedToStaff(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Submit(context.Background(), "student-1", "other", "feedback one"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.List(context.Background(), "student-1", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student list: want ErrForbidden, got %v", err)
	}

	tickets, err := svc.List(context.Background(), "faculty-1", "")
	if err != nil || len(tickets) != 1 {
		t.Fatalf("staff list: %v, len %d", err, len(tickets))
	}
}

func TestResolveClosesTicket(t *testing.T) {
	svc := newTestService(t)
	ticket, err := svc.Submit(context.Background(), "student-1", "other", "please fix")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), "student-1", ticket.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student resolve: want ErrForbidden, got %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), "admin-1", ticket.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != StatusResolved || resolved.ResolvedBy != "admin-1" || resolved.ResolvedAt.IsZero() {
		t.Fatalf("unexpected resolved ticket: %+v", resolved)
	}

	open, err := svc.List(context.Background(), "admin-1", StatusOpen)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("resolved ticket still listed as open: %+v", open)
	}
}
