package users

import (
	"context"
	"errors"
)

// Service contains business logic for user identities.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Upsert stores or refreshes a user record.
func (s *Service) Upsert(ctx context.Context, user User) error {
	if user.ID == "" {
		return errors.New("user id required")
	}
	return s.repo.Upsert(ctx, user)
}

// GetByID resolves an opaque user identifier to a user record with a role.
// An empty identifier means the caller never authenticated.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if userID == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, userID)
}

// List returns users, optionally filtered by role.
func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	return s.repo.List(ctx, role)
}
