package projects

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	projects map[string]Project
	requests map[string]Request
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		projects: make(map[string]Project),
		requests: make(map[string]Request),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, p Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.projects[p.ID] = p
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, projectID string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[projectID]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListByCreator(ctx context.Context, userID string) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Project
	for _, p := range r.projects {
		if p.CreatedBy == userID {
			out = append(out, p)
		}
	}
	sortProjects(out)
	return out, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	sortProjects(out)
	return out, nil
}

func (r *MemoryRepo) UpdatePrompt(ctx context.Context, projectID, prompt, modifiedBy string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	p.AIPromptCustom = prompt
	p.ModifiedBy = modifiedBy
	p.ModifiedDate = &now
	r.projects[projectID] = p
	return nil
}

func (r *MemoryRepo) CreateRequest(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[req.ProjectID]; !ok {
		return ErrNotFound
	}
	for _, existing := range r.requests {
		if existing.ProjectID == req.ProjectID && existing.StudentID == req.StudentID {
			return ErrDuplicateRequest
		}
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	r.requests[req.ID] = req
	return nil
}

func (r *MemoryRepo) ListPendingRequests(ctx context.Context, projectID string) ([]Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Request
	for _, req := range r.requests {
		if req.ProjectID == projectID && req.Status == StatusPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func sortProjects(list []Project) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
