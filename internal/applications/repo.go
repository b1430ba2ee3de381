package applications

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists")
)

// Repo defines persistence operations for internship applications.
type Repo interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListByInternship(ctx context.Context, internshipID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
