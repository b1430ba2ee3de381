package shortlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cie-backend/internal/projects"
	"cie-backend/internal/queue"
	"cie-backend/internal/shared/metrics"
	"cie-backend/internal/shared/telemetry"
	"cie-backend/internal/users"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotOwner         = errors.New("not the project owner")
	ErrMissingProjectID = errors.New("project id is required")
	ErrNoPendingReqs    = errors.New("no pending requests for project")
	ErrNoResumeDir      = errors.New("no resume directory for project")
	ErrNotConfigured    = errors.New("ranking api key not configured")
	ErrInProgress       = errors.New("shortlist already in progress for project")
)

// Service runs the shortlist workflow: authorize, validate, resolve the
// prompt, execute the ranking task, and correlate results to pending
// requests.
type Service struct {
	Users    *users.Service
	Projects projects.Repo
	Runner   Runner
	Queue    queue.Client

	// APIKey is handed to the runner inside the task spec and is never
	// logged.
	APIKey string

	// ApplicationsDir is the root under which each project's resume folder
	// lives as a subdirectory named by project id.
	ApplicationsDir string
	Workers         int

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Input is one shortlist request. TopK is accepted for API compatibility
// but never truncates the result list.
type Input struct {
	ProjectID    string
	TopK         int
	CustomPrompt string
}

// Run executes the full workflow. Gate order is fixed: identity, role,
// input, project existence, ownership, pending requests, resume folder,
// configuration, then orchestration.
func (s *Service) Run(ctx context.Context, actorID string, in Input) (Result, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return Result{}, err
	}
	if actor.Role != users.RoleFaculty {
		return Result{}, ErrForbidden
	}
	if strings.TrimSpace(in.ProjectID) == "" {
		return Result{}, ErrMissingProjectID
	}

	project, err := s.Projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return Result{}, err
	}
	if project.CreatedBy != actorID {
		return Result{}, ErrNotOwner
	}

	pending, err := s.Projects.ListPendingRequests(ctx, project.ID)
	if err != nil {
		return Result{}, err
	}
	if len(pending) == 0 {
		return Result{}, ErrNoPendingReqs
	}

	resumeDir := filepath.Join(s.ApplicationsDir, project.ID)
	if info, err := os.Stat(resumeDir); err != nil || !info.IsDir() {
		return Result{}, ErrNoResumeDir
	}
	if s.APIKey == "" {
		return Result{}, ErrNotConfigured
	}

	if !s.acquire(project.ID) {
		return Result{}, ErrInProgress
	}
	defer s.release(project.ID)

	prompt := resolvePrompt(in.CustomPrompt, project)

	metrics.IncShortlistStarted()
	started := time.Now()

	candidates, err := s.Runner.Run(ctx, TaskSpec{
		ResumeDir:   resumeDir,
		Description: prompt,
		APIKey:      s.APIKey,
		Workers:     s.Workers,
	})
	if err != nil {
		metrics.IncShortlistFailed()
		telemetry.Error("shortlist.run_failed", map[string]any{
			"project_id":  project.ID,
			"duration_ms": time.Since(started).Milliseconds(),
			"error":       err.Error(),
		})
		if errors.Is(err, ErrResumeDirMissing) {
			return Result{}, ErrNoResumeDir
		}
		return Result{}, fmt.Errorf("run ranking task: %w", err)
	}

	shortlisted, dropped := correlate(candidates, pending)
	if dropped > 0 {
		metrics.AddShortlistDropped(dropped)
		telemetry.Warn("shortlist.candidates_dropped", map[string]any{
			"project_id": project.ID,
			"dropped":    dropped,
			"matched":    len(shortlisted),
		})
	}

	duration := time.Since(started)
	metrics.IncShortlistCompleted()
	metrics.ObserveShortlistDurationMs(float64(duration.Milliseconds()))

	result := Result{
		Project: ProjectSummary{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
		},
		TotalApplications:     len(pending),
		ShortlistedCandidates: shortlisted,
		PromptUsed:            prompt,
		Dropped:               dropped,
		DurationMs:            duration.Milliseconds(),
	}

	s.publish(ctx, actorID, result)
	return result, nil
}

// resolvePrompt applies the precedence: request override, saved project
// prompt, generated default.
func resolvePrompt(custom string, p projects.Project) string {
	if trimmed := strings.TrimSpace(custom); trimmed != "" {
		return trimmed
	}
	if trimmed := strings.TrimSpace(p.AIPromptCustom); trimmed != "" {
		return trimmed
	}
	return projects.DefaultPrompt(p)
}

// correlate joins candidates to pending requests: a candidate is kept iff
// some request's resume path contains its file name. Unmatched candidates
// are dropped, and the count is reported for logging.
func correlate(candidates []Candidate, pending []projects.Request) ([]Shortlisted, int) {
	shortlisted := make([]Shortlisted, 0, len(candidates))
	dropped := 0
	for _, cand := range candidates {
		req, ok := matchRequest(cand, pending)
		if !ok {
			dropped++
			continue
		}
		shortlisted = append(shortlisted, Shortlisted{
			RequestID:    req.ID,
			StudentID:    req.StudentID,
			StudentName:  req.StudentName,
			StudentEmail: req.StudentEmail,
			FileName:     cand.FileName,
			FilePath:     cand.FilePath,
			Score:        cand.Score,
			AIAnalysis: Analysis{
				Name:     cand.Name,
				Skills:   cand.Skills,
				Reasons:  cand.Reasons,
				Metadata: cand.Metadata,
			},
		})
	}
	return shortlisted, dropped
}

func matchRequest(cand Candidate, pending []projects.Request) (projects.Request, bool) {
	if cand.FileName == "" {
		return projects.Request{}, false
	}
	for _, req := range pending {
		if req.ResumePath != "" && strings.Contains(req.ResumePath, cand.FileName) {
			return req, true
		}
	}
	return projects.Request{}, false
}

func (s *Service) acquire(projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight == nil {
		s.inFlight = make(map[string]struct{})
	}
	if _, busy := s.inFlight[projectID]; busy {
		return false
	}
	s.inFlight[projectID] = struct{}{}
	return true
}

func (s *Service) release(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, projectID)
}

// publish emits a completion event. Best-effort: a publish failure is
// logged, never surfaced to the caller.
func (s *Service) publish(ctx context.Context, actorID string, r Result) {
	if s.Queue == nil {
		return
	}
	msg := queue.Message{
		ProjectID:         r.Project.ID,
		ActorID:           actorID,
		TotalApplications: r.TotalApplications,
		Shortlisted:       len(r.ShortlistedCandidates),
		Dropped:           r.Dropped,
		DurationMs:        r.DurationMs,
		EnqueuedAt:        time.Now().UTC().Format(time.RFC3339),
		Version:           1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Warn("shortlist.publish_failed", map[string]any{
			"project_id": r.Project.ID,
			"error":      err.Error(),
		})
	}
}
