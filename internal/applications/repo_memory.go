package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, a Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.StudentID == a.StudentID && existing.InternshipID == a.InternshipID {
			return ErrDuplicate
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.UpdatedAt = a.CreatedAt
	r.items[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) ListByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return r.list(ctx, func(a Application) bool { return a.StudentID == studentID })
}

func (r *MemoryRepo) ListByInternship(ctx context.Context, internshipID string) ([]Application, error) {
	return r.list(ctx, func(a Application) bool { return a.InternshipID == internshipID })
}

func (r *MemoryRepo) list(ctx context.Context, keep func(Application) bool) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, a := range r.items {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	r.items[id] = a
	return nil
}
