package internships

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"cie-backend/internal/shared/storage/object"
	"cie-backend/internal/shared/telemetry"
	"cie-backend/internal/users"
)

var ErrForbidden = errors.New("forbidden")

// Service contains business logic for internship postings.
type Service struct {
	Repo  Repo
	Users *users.Service
	Store object.ObjectStore
}

// CreateInput carries the fields for a new internship posting.
type CreateInput struct {
	Title       string
	Duration    string
	Skills      []string
	FacultyID   string
	Slots       *int
	StartDate   time.Time
	EndDate     time.Time
	Description io.Reader
}

// Create stores a new internship posting. Only admins may create postings.
// When a description document is supplied it is persisted in the object
// store under a key derived from the new posting's id.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Internship, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Internship{}, err
	}
	if actor.Role != users.RoleAdmin {
		return Internship{}, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" {
		return Internship{}, errors.New("title is required")
	}
	if in.EndDate.Before(in.StartDate) {
		return Internship{}, errors.New("end date precedes start date")
	}

	i := Internship{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Duration:  strings.TrimSpace(in.Duration),
		Skills:    in.Skills,
		FacultyID: in.FacultyID,
		Slots:     in.Slots,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedAt: time.Now().UTC(),
	}

	if in.Description != nil {
		key := fmt.Sprintf("internships/%s/description.pdf", i.ID)
		if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", in.Description); err != nil {
			return Internship{}, fmt.Errorf("store description: %w", err)
		}
		i.DescriptionKey = key
	}

	if err := s.Repo.Create(ctx, i); err != nil {
		return Internship{}, err
	}
	return i, nil
}

// List returns all internship postings with faculty names resolved.
func (s *Service) List(ctx context.Context) ([]Internship, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range list {
		if list[idx].FacultyName != "" || list[idx].FacultyID == "" {
			continue
		}
		u, err := s.Users.GetByID(ctx, list[idx].FacultyID)
		if err == nil {
			list[idx].FacultyName = u.Name
		}
	}
	return list, nil
}

// Get returns a single internship posting.
func (s *Service) Get(ctx context.Context, id string) (Internship, error) {
	return s.Repo.GetByID(ctx, id)
}

// OpenDescription streams the stored description document for a posting.
func (s *Service) OpenDescription(ctx context.Context, id string) (io.ReadCloser, error) {
	i, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.DescriptionKey == "" {
		return nil, ErrNotFound
	}
	return s.Store.Open(ctx, i.DescriptionKey)
}

// Delete removes a posting. The stored description document is removed on a
// best-effort basis; a storage failure does not roll back the row delete and
// the leftover key is returned so the caller can report it.
func (s *Service) Delete(ctx context.Context, actorID, id string) (leftoverKey string, err error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return "", err
	}
	if actor.Role != users.RoleAdmin {
		return "", ErrForbidden
	}

	i, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return "", err
	}

	if i.DescriptionKey != "" {
		if derr := s.Store.Delete(ctx, i.DescriptionKey); derr != nil {
			telemetry.Warn("internship.description_cleanup_failed", map[string]any{
				"internship_id": id,
				"storage_key":   i.DescriptionKey,
				"error":         derr.Error(),
			})
			return i.DescriptionKey, nil
		}
	}
	return "", nil
}
