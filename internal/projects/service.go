package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cie-backend/internal/users"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotOwner  = errors.New("not the project owner")
)

// Service contains business logic for projects and project requests.
type Service struct {
	Repo  Repo
	Users *users.Service
}

// CreateInput carries the fields for a new project.
type CreateInput struct {
	Name                   string
	Description            string
	ExpectedCompletionDate time.Time
}

// Create stores a new faculty-owned project.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Project, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Project{}, err
	}
	if actor.Role != users.RoleFaculty {
		return Project{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return Project{}, errors.New("name and description are required")
	}

	p := Project{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(in.Name),
		Description:            strings.TrimSpace(in.Description),
		CreatedBy:              actorID,
		ExpectedCompletionDate: in.ExpectedCompletionDate,
		CreatedAt:              time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// List returns the actor's own projects, or all projects for admins.
func (s *Service) List(ctx context.Context, actorID string) ([]Project, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case users.RoleAdmin:
		return s.Repo.ListAll(ctx)
	case users.RoleFaculty:
		return s.Repo.ListByCreator(ctx, actorID)
	default:
		return nil, ErrForbidden
	}
}

// GetOwned fetches a project and verifies the actor is a faculty member who owns it.
func (s *Service) GetOwned(ctx context.Context, actorID, projectID string) (Project, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Project{}, err
	}
	if actor.Role != users.RoleFaculty {
		return Project{}, ErrForbidden
	}
	p, err := s.Repo.GetByID(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if p.CreatedBy != actorID {
		return Project{}, ErrNotOwner
	}
	return p, nil
}

// UpdatePrompt saves (or clears) the project's custom ranking prompt.
func (s *Service) UpdatePrompt(ctx context.Context, actorID, projectID, prompt string) (Project, error) {
	if _, err := s.GetOwned(ctx, actorID, projectID); err != nil {
		return Project{}, err
	}
	if err := s.Repo.UpdatePrompt(ctx, projectID, strings.TrimSpace(prompt), actorID); err != nil {
		return Project{}, err
	}
	return s.Repo.GetByID(ctx, projectID)
}

// Apply creates a pending request from a student with a resume reference.
func (s *Service) Apply(ctx context.Context, actorID, projectID, resumePath string) (Request, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Request{}, err
	}
	if actor.Role != users.RoleStudent {
		return Request{}, ErrForbidden
	}
	if strings.TrimSpace(resumePath) == "" {
		return Request{}, errors.New("resume path is required")
	}
	if _, err := s.Repo.GetByID(ctx, projectID); err != nil {
		return Request{}, err
	}

	req := Request{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		StudentID:    actorID,
		Status:       StatusPending,
		ResumePath:   strings.TrimSpace(resumePath),
		StudentName:  actor.Name,
		StudentEmail: actor.Email,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreateRequest(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// PendingRequests lists a project's pending requests for its owner.
func (s *Service) PendingRequests(ctx context.Context, actorID, projectID string) ([]Request, error) {
	if _, err := s.GetOwned(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.Repo.ListPendingRequests(ctx, projectID)
}
