package projects

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrDuplicateRequest = errors.New("request already exists")
)

// Repo defines persistence operations for projects and project requests.
type Repo interface {
	Create(ctx context.Context, p Project) error
	GetByID(ctx context.Context, projectID string) (Project, error)
	ListByCreator(ctx context.Context, userID string) ([]Project, error)
	ListAll(ctx context.Context) ([]Project, error)
	UpdatePrompt(ctx context.Context, projectID, prompt, modifiedBy string) error

	CreateRequest(ctx context.Context, req Request) error
	ListPendingRequests(ctx context.Context, projectID string) ([]Request, error)
}
