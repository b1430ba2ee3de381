package internships

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("internship not found")

// Repo defines persistence operations for internship postings.
type Repo interface {
	Create(ctx context.Context, i Internship) error
	GetByID(ctx context.Context, id string) (Internship, error)
	List(ctx context.Context) ([]Internship, error)
	Delete(ctx context.Context, id string) error
}
