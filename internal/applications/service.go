package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cie-backend/internal/internships"
	"cie-backend/internal/users"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidStatus = errors.New("invalid status")
)

// Service contains business logic for internship applications.
type Service struct {
	Repo        Repo
	Users       *users.Service
	Internships *internships.Service
}

// Apply creates a pending application from a student to an internship.
func (s *Service) Apply(ctx context.Context, actorID, internshipID, resumeKey string) (Application, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Application{}, err
	}
	if actor.Role != users.RoleStudent {
		return Application{}, ErrForbidden
	}
	if _, err := s.Internships.Get(ctx, internshipID); err != nil {
		return Application{}, err
	}

	now := time.Now().UTC()
	a := Application{
		ID:           uuid.NewString(),
		StudentID:    actorID,
		InternshipID: internshipID,
		Status:       StatusPending,
		ResumeKey:    strings.TrimSpace(resumeKey),
		StudentName:  actor.Name,
		StudentEmail: actor.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// ListForStudent returns a student's own applications. Admins and faculty may
// list any student's applications.
func (s *Service) ListForStudent(ctx context.Context, actorID, studentID string) ([]Application, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == users.RoleStudent && actorID != studentID {
		return nil, ErrForbidden
	}
	return s.Repo.ListByStudent(ctx, studentID)
}

// ListForInternship returns applications for a posting. Students may not list.
func (s *Service) ListForInternship(ctx context.Context, actorID, internshipID string) ([]Application, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == users.RoleStudent {
		return nil, ErrForbidden
	}
	return s.Repo.ListByInternship(ctx, internshipID)
}

// SetStatus records a faculty or admin decision. Only ACCEPTED and REJECTED
// are permitted; an application cannot be moved back to PENDING.
func (s *Service) SetStatus(ctx context.Context, actorID, applicationID, status string) (Application, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Application{}, err
	}
	if actor.Role != users.RoleFaculty && actor.Role != users.RoleAdmin {
		return Application{}, ErrForbidden
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != StatusAccepted && status != StatusRejected {
		return Application{}, ErrInvalidStatus
	}
	if err := s.Repo.UpdateStatus(ctx, applicationID, status); err != nil {
		return Application{}, err
	}
	return s.Repo.GetByID(ctx, applicationID)
}
