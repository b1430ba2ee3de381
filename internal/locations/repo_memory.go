package locations

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	items    map[string]Location
	bookings map[string][]Booking
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items:    make(map[string]Location),
		bookings: make(map[string][]Booking),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, l Location) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.items[l.ID] = l
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.items[id]
	if !ok {
		return Location{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Location, 0, len(r.items))
	for _, l := range r.items {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.bookings, id)
	return nil
}

func (r *MemoryRepo) CreateBooking(ctx context.Context, b Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.LocationID]; !ok {
		return ErrNotFound
	}
	for _, existing := range r.bookings[b.LocationID] {
		if b.Overlaps(existing) {
			return ErrOverlap
		}
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.bookings[b.LocationID] = append(r.bookings[b.LocationID], b)
	return nil
}

func (r *MemoryRepo) ListBookings(ctx context.Context, locationID string, from time.Time) ([]Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.items[locationID]; !ok {
		return nil, ErrNotFound
	}
	var out []Booking
	for _, b := range r.bookings[locationID] {
		if b.EndsAt.After(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}
