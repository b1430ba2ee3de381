package internships

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Internship
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Internship)}
}

func (r *MemoryRepo) Create(ctx context.Context, i Internship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	r.items[i.ID] = i
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Internship, error) {
	if err := ctx.Err(); err != nil {
		return Internship{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.items[id]
	if !ok {
		return Internship{}, ErrNotFound
	}
	return i, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Internship, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
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
	return nil
}
