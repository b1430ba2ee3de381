package shortlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"cie-backend/internal/shared/telemetry"
)

const maxLoggedStderr = 4096

// PythonRunner executes ranking tasks by materializing a temporary Python
// script and running it as a child process. The script imports the resume
// selector module from ScriptsDir, so that module must be deployed there.
type PythonRunner struct {
	ScriptsDir  string
	Interpreter string
	Timeout     time.Duration
}

func NewPythonRunner(scriptsDir, interpreter string, timeout time.Duration) *PythonRunner {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &PythonRunner{
		ScriptsDir:  scriptsDir,
		Interpreter: interpreter,
		Timeout:     timeout,
	}
}

// Run materializes the task as a script, launches it, and parses the final
// stdout line as the result. The child's stderr is progress narration and is
// logged only. Exit codes are not authoritative; the stdout payload is.
func (r *PythonRunner) Run(ctx context.Context, spec TaskSpec) ([]Candidate, error) {
	info, err := os.Stat(spec.ResumeDir)
	if err != nil || !info.IsDir() {
		return nil, ErrResumeDirMissing
	}

	scriptPath, err := r.writeScript(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: write task script: %v", ErrRunFailed, err)
	}
	defer func() {
		if rmErr := os.Remove(scriptPath); rmErr != nil && !os.IsNotExist(rmErr) {
			telemetry.Warn("shortlist.script_cleanup_failed", map[string]any{
				"script": scriptPath,
				"error":  rmErr.Error(),
			})
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.interpreter(), scriptPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Do not wait on inherited pipes forever if the tool forks workers that
	// outlive the kill.
	cmd.WaitDelay = 10 * time.Second

	runErr := cmd.Run()

	if progress := strings.TrimSpace(stderr.String()); progress != "" {
		if len(progress) > maxLoggedStderr {
			progress = progress[len(progress)-maxLoggedStderr:]
		}
		telemetry.Info("shortlist.runner_progress", map[string]any{"stderr": progress})
	}

	if runCtx.Err() != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("%w: failed to process: timed out after %s", ErrRunFailed, r.Timeout)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	line := lastNonEmptyLine(stdout.String())
	if line == "" {
		if runErr != nil {
			return nil, fmt.Errorf("%w: no result produced: %v", ErrRunFailed, runErr)
		}
		return nil, fmt.Errorf("%w: no result produced", ErrRunFailed)
	}

	var out struct {
		Success    bool        `json:"success"`
		Candidates []Candidate `json:"candidates"`
		Error      string      `json:"error"`
	}
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		return nil, fmt.Errorf("%w: unparsable result line: %v", ErrRunFailed, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRunFailed, out.Error)
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: tool reported no success", ErrRunFailed)
	}
	return out.Candidates, nil
}

func (r *PythonRunner) writeScript(spec TaskSpec) (string, error) {
	if err := os.MkdirAll(r.ScriptsDir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(r.ScriptsDir, "run_resume_selector_*.py")
	if err != nil {
		return "", err
	}
	script := fmt.Sprintf(taskScript,
		pyString(r.ScriptsDir),
		pyString(spec.APIKey),
		spec.Workers,
		pyString(spec.ResumeDir),
		pyString(spec.Description),
	)
	if _, err := f.WriteString(script); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// interpreter returns the configured interpreter, or the first existing
// candidate from the usual virtualenv locations, or "python3".
func (r *PythonRunner) interpreter() string {
	if r.Interpreter != "" {
		return r.Interpreter
	}
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()
	candidates := []string{
		filepath.Join(wd, "..", ".venv", "bin", "python"),
		filepath.Join(wd, ".venv", "bin", "python"),
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, ".venv", "bin", "python"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return "python3"
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// pyString renders s as a Python string literal. JSON string syntax is a
// subset of Python's, so the encoding is reused directly.
func pyString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

const taskScript = `import sys
import os
import json
import warnings

warnings.filterwarnings("ignore")
os.environ['TOKENIZERS_PARALLELISM'] = 'false'
os.environ['HF_HUB_DISABLE_SYMLINKS_WARNING'] = '1'

sys.path.append(%s)

from resume_selector_optimized import OptimizedResumeSelector


def main():
    try:
        selector = OptimizedResumeSelector(api_key=%s, quiet=False, max_workers=%d)

        resume_folder = %s
        print("Processing resumes from: " + resume_folder, file=sys.stderr)
        sys.stderr.flush()

        if not selector.process_resumes(resume_folder):
            print(json.dumps({"error": "Failed to process resumes"}))
            return

        project_desc = %s
        search_k = selector.get_resume_count()
        print("Ranking all " + str(search_k) + " candidates by semantic similarity...", file=sys.stderr)
        candidates = selector.search_resumes(project_desc, top_k=search_k)
        if not candidates:
            print(json.dumps({"error": "No suitable candidates found"}))
            return

        print("Running AI analysis on " + str(len(candidates)) + " candidates...", file=sys.stderr)
        sys.stderr.flush()
        results = selector.generate_candidate_summary_batch(project_desc, candidates)

        print(json.dumps({"success": True, "candidates": results}))
    except Exception as exc:
        print(json.dumps({"error": str(exc)}))


if __name__ == "__main__":
    main()
`

var _ Runner = (*PythonRunner)(nil)
