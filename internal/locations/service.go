package locations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cie-backend/internal/users"
)

var ErrForbidden = errors.New("forbidden")

// Service contains business logic for locations and bookings.
type Service struct {
	Repo  Repo
	Users *users.Service
}

// Create adds a bookable location. Admin only.
func (s *Service) Create(ctx context.Context, actorID, name, building string, capacity int) (Location, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Location{}, err
	}
	if actor.Role != users.RoleAdmin {
		return Location{}, ErrForbidden
	}
	if strings.TrimSpace(name) == "" {
		return Location{}, errors.New("name is required")
	}

	l := Location{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Building:  strings.TrimSpace(building),
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return Location{}, err
	}
	return l, nil
}

// List returns all locations.
func (s *Service) List(ctx context.Context) ([]Location, error) {
	return s.Repo.List(ctx)
}

// Delete removes a location and its bookings. Admin only.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != users.RoleAdmin {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}

// Book reserves a location for [startsAt, endsAt). Any authenticated user
// may book; overlapping reservations are rejected.
func (s *Service) Book(ctx context.Context, actorID, locationID, purpose string, startsAt, endsAt time.Time) (Booking, error) {
	if _, err := s.Users.GetByID(ctx, actorID); err != nil {
		return Booking{}, err
	}
	if !endsAt.After(startsAt) {
		return Booking{}, errors.New("end time must be after start time")
	}

	b := Booking{
		ID:         uuid.NewString(),
		LocationID: locationID,
		UserID:     actorID,
		Purpose:    strings.TrimSpace(purpose),
		StartsAt:   startsAt.UTC(),
		EndsAt:     endsAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateBooking(ctx, b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// Bookings lists current and future bookings for a location.
func (s *Service) Bookings(ctx context.Context, locationID string) ([]Booking, error) {
	return s.Repo.ListBookings(ctx, locationID, time.Now().UTC())
}
