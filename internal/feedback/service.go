package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cie-backend/internal/users"
)

var ErrForbidden = errors.New("forbidden")

// Service contains business logic for feedback tickets.
type Service struct {
	Repo  Repo
	Users *users.Service
}

// Submit files a new ticket for the acting user.
func (s *Service) Submit(ctx context.Context, actorID, category, message string) (Ticket, error) {
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return Ticket{}, err
	}
	if strings.TrimSpace(message) == "" {
		return Ticket{}, errors.New("message is required")
	}

	t := Ticket{
		ID:        uuid.NewString(),
		UserID:    actorID,
		Category:  strings.TrimSpace(category),
		Message:   strings.TrimSpace(message),
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// List returns tickets, optionally filtered by status. Students may not list.
func (s *Service) List(ctx context.Context, actorID, status string) ([]Ticket, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == users.RoleStudent {
		return nil, ErrForbidden
	}
	return s.Repo.List(ctx, strings.ToUpper(strings.TrimSpace(status)))
}

// Resolve closes a ticket.
func (s *Service) Resolve(ctx context.Context, actorID, ticketID string) (Ticket, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Ticket{}, err
	}
	if actor.Role == users.RoleStudent {
		return Ticket{}, ErrForbidden
	}
	if err := s.Repo.Resolve(ctx, ticketID, actorID); err != nil {
		return Ticket{}, err
	}
	return s.Repo.GetByID(ctx, ticketID)
}
