package locations

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("location not found")
	ErrOverlap  = errors.New("booking overlaps an existing booking")
)

// Repo defines persistence operations for locations and bookings.
type Repo interface {
	Create(ctx context.Context, l Location) error
	GetByID(ctx context.Context, id string) (Location, error)
	List(ctx context.Context) ([]Location, error)
	Delete(ctx context.Context, id string) error

	// CreateBooking rejects with ErrOverlap when the interval collides with
	// an existing booking for the same location.
	CreateBooking(ctx context.Context, b Booking) error
	ListBookings(ctx context.Context, locationID string, from time.Time) ([]Booking, error)
}
