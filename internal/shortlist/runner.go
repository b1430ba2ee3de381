package shortlist

import (
	"context"
	"errors"
)

// TaskSpec describes one ranking run. The API key travels inside the task so
// the runner never reads secrets from ambient configuration.
type TaskSpec struct {
	ResumeDir   string
	Description string
	APIKey      string
	Workers     int
}

// Runner executes a ranking task and returns the ranked candidates. The
// mechanism (local subprocess, remote job, in-process library) is the
// implementation's concern; callers depend only on this contract.
type Runner interface {
	Run(ctx context.Context, spec TaskSpec) ([]Candidate, error)
}

var (
	// ErrResumeDirMissing means the task's working directory does not exist;
	// no process is launched.
	ErrResumeDirMissing = errors.New("resume directory does not exist")

	// ErrRunFailed wraps subprocess failures: timeout, unparsable output, or
	// a tool-reported error.
	ErrRunFailed = errors.New("ranking task failed")
)
