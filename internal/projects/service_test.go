package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"cie-backend/internal/users"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	usersRepo := users.NewMemoryRepo()
	ctx := context.Background()
	seed := []users.User{
		{ID: "faculty-1", Email: "owner@uni.edu", Name: "Owner", Role: users.RoleFaculty},
		{ID: "faculty-2", Email: "other@uni.edu", Name: "Other", Role: users.RoleFaculty},
		{ID: "student-1", Email: "alice@uni.edu", Name: "Alice", Role: users.RoleStudent},
		{ID: "admin-1", Email: "admin@uni.edu", Name: "Admin", Role: users.RoleAdmin},
	}
	for _, u := range seed {
		if err := usersRepo.Upsert(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	return &Service{Repo: NewMemoryRepo(), Users: users.NewService(usersRepo)}
}

func createProject(t *testing.T, svc *Service, creator string) Project {
	t.Helper()
	p, err := svc.Create(context.Background(), creator, CreateInput{
		Name:                   "Campus App",
		Description:            "Build the campus app",
		ExpectedCompletionDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestCreateRequiresFaculty(t *testing.T) {
	svc := newTestService(t)

	for _, actor := range []string{"student-1", "admin-1"} {
		_, err := svc.Create(context.Background(), actor, CreateInput{Name: "x", Description: "y"})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("actor %s: want ErrForbidden, got %v", actor, err)
		}
	}
}

func TestListScopes(t *testing.T) {
	svc := newTestService(t)
	createProject(t, svc, "faculty-1")
	createProject(t, svc, "faculty-2")

	own, err := svc.List(context.Background(), "faculty-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(own) != 1 || own[0].CreatedBy != "faculty-1" {
		t.Fatalf("faculty must see only own projects: %+v", own)
	}

	all, err := svc.List(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see all projects, got %d", len(all))
	}

	if _, err := svc.List(context.Background(), "student-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student list: want ErrForbidden, got %v", err)
	}
}

func TestGetOwnedEnforcesOwnership(t *testing.T) {
	svc := newTestService(t)
	p := createProject(t, svc, "faculty-1")

	if _, err := svc.GetOwned(context.Background(), "faculty-2", p.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
	if _, err := svc.GetOwned(context.Background(), "faculty-1", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	got, err := svc.GetOwned(context.Background(), "faculty-1", p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("owner fetch failed: %v", err)
	}
}

func TestUpdatePromptRoundTrip(t *testing.T) {
	svc := newTestService(t)
	p := createProject(t, svc, "faculty-1")

	updated, err := svc.UpdatePrompt(context.Background(), "faculty-1", p.ID, "  focus on Go experience  ")
	if err != nil {
		t.Fatalf("update prompt: %v", err)
	}
	if updated.AIPromptCustom != "focus on Go experience" {
		t.Fatalf("prompt not trimmed/saved: %q", updated.AIPromptCustom)
	}

	cleared, err := svc.UpdatePrompt(context.Background(), "faculty-1", p.ID, "")
	if err != nil {
		t.Fatalf("clear prompt: %v", err)
	}
	if cleared.AIPromptCustom != "" {
		t.Fatalf("prompt not cleared: %q", cleared.AIPromptCustom)
	}
}

func TestApplyCreatesPendingRequestOnce(t *testing.T) {
	svc := newTestService(t)
	p := createProject(t, svc, "faculty-1")

	req, err := svc.Apply(context.Background(), "student-1", p.ID, "uploads/alice.pdf")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if req.Status != StatusPending || req.StudentEmail != "alice@uni.edu" {
		t.Fatalf("unexpected request: %+v", req)
	}

	if _, err := svc.Apply(context.Background(), "student-1", p.ID, "uploads/alice.pdf"); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("want ErrDuplicateRequest, got %v", err)
	}

	if _, err := svc.Apply(context.Background(), "faculty-2", p.ID, "uploads/x.pdf"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("faculty apply: want ErrForbidden, got %v", err)
	}
}

func TestPendingRequestsOwnerOnly(t *testing.T) {
	svc := newTestService(t)
	p := createProject(t, svc, "faculty-1")
	if _, err := svc.Apply(context.Background(), "student-1", p.ID, "uploads/alice.pdf"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	list, err := svc.PendingRequests(context.Background(), "faculty-1", p.ID)
	if err != nil {
		t.Fatalf("pending requests: %v", err)
	}
	if len(list) != 1 || list[0].StudentName != "Alice" {
		t.Fatalf("unexpected requests: %+v", list)
	}

	if _, err := svc.PendingRequests(context.Background(), "faculty-2", p.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
}

func TestDefaultPromptFormat(t *testing.T) {
	p := Project{
		Name:                   "Campus App",
		Description:            "Build the campus app",
		ExpectedCompletionDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	want := "Project: Campus App\n\nDescription: Build the campus app\n\nRequirements: Looking for candidates with relevant skills and experience for this project.\n\nExpected completion: 01 Dec 2026"
	if got := DefaultPrompt(p); got != want {
		t.Fatalf("default prompt mismatch:\n got: %q\nwant: %q", got, want)
	}
}
