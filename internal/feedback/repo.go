package feedback

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("feedback ticket not found")

// Repo defines persistence operations for feedback tickets.
type Repo interface {
	Create(ctx context.Context, t Ticket) error
	GetByID(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context, status string) ([]Ticket, error)
	Resolve(ctx context.Context, id, resolvedBy string) error
}
