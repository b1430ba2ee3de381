package shortlist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeStub creates an executable script standing in for the Python
// interpreter. The runner passes the generated task script as argv[1]; the
// stubs ignore it and emit canned output.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "python-stub")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func newRunner(t *testing.T, stubBody string, timeout time.Duration) (*PythonRunner, string) {
	t.Helper()
	scriptsDir := t.TempDir()
	r := NewPythonRunner(scriptsDir, writeStub(t, stubBody), timeout)
	return r, scriptsDir
}

func resumeDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "resumes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

func leftoverScripts(t *testing.T, scriptsDir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(scriptsDir, "*.py"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return matches
}

func TestPythonRunnerParsesFinalStdoutLine(t *testing.T) {
	r, scriptsDir := newRunner(t, `
echo "initializing..." >&2
echo "warming up"
echo '{"success": true, "candidates": [{"file_name": "alice.pdf", "file_path": "/r/alice.pdf", "score": 0.91, "name": "Alice", "skills": ["Go", "SQL"], "reasons": ["strong match"], "metadata": {"pages": 2}}]}'
`, time.Minute)

	candidates, err := r.Run(context.Background(), TaskSpec{
		ResumeDir:   resumeDir(t),
		Description: "desc",
		APIKey:      "key",
		Workers:     2,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("want 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.FileName != "alice.pdf" || c.Score != 0.91 || c.Name != "Alice" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if len(c.Skills) != 2 || c.Skills[0] != "Go" {
		t.Fatalf("skills not preserved: %v", c.Skills)
	}
	if got := leftoverScripts(t, scriptsDir); len(got) != 0 {
		t.Fatalf("task script not cleaned up: %v", got)
	}
}

func TestPythonRunnerIgnoresExitCode(t *testing.T) {
	r, _ := newRunner(t, `
echo '{"success": true, "candidates": []}'
exit 3
`, time.Minute)

	candidates, err := r.Run(context.Background(), TaskSpec{ResumeDir: resumeDir(t), APIKey: "key"})
	if err != nil {
		t.Fatalf("stdout is authoritative, exit code is not: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("want no candidates, got %d", len(candidates))
	}
}

func TestPythonRunnerToolError(t *testing.T) {
	r, scriptsDir := newRunner(t, `echo '{"error": "Failed to process resumes"}'`, time.Minute)

	_, err := r.Run(context.Background(), TaskSpec{ResumeDir: resumeDir(t), APIKey: "key"})
	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("want ErrRunFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Failed to process resumes") {
		t.Fatalf("tool message lost: %v", err)
	}
	if got := leftoverScripts(t, scriptsDir); len(got) != 0 {
		t.Fatalf("task script not cleaned up: %v", got)
	}
}

func TestPythonRunnerMalformedStdout(t *testing.T) {
	r, scriptsDir := newRunner(t, `echo 'this is not json'`, time.Minute)

	_, err := r.Run(context.Background(), TaskSpec{ResumeDir: resumeDir(t), APIKey: "key"})
	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("want ErrRunFailed, got %v", err)
	}
	if got := leftoverScripts(t, scriptsDir); len(got) != 0 {
		t.Fatalf("task script not cleaned up: %v", got)
	}
}

func TestPythonRunnerTimeoutKillsProcess(t *testing.T) {
	r, scriptsDir := newRunner(t, `exec sleep 10`, 150*time.Millisecond)

	start := time.Now()
	_, err := r.Run(context.Background(), TaskSpec{ResumeDir: resumeDir(t), APIKey: "key"})
	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("want ErrRunFailed on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("run did not return promptly after timeout: %s", elapsed)
	}
	if got := leftoverScripts(t, scriptsDir); len(got) != 0 {
		t.Fatalf("task script not cleaned up after timeout: %v", got)
	}
}

func TestPythonRunnerMissingResumeDir(t *testing.T) {
	r, scriptsDir := newRunner(t, `echo '{"success": true, "candidates": []}'`, time.Minute)

	_, err := r.Run(context.Background(), TaskSpec{
		ResumeDir: filepath.Join(t.TempDir(), "does-not-exist"),
		APIKey:    "key",
	})
	if !errors.Is(err, ErrResumeDirMissing) {
		t.Fatalf("want ErrResumeDirMissing, got %v", err)
	}
	if got := leftoverScripts(t, scriptsDir); len(got) != 0 {
		t.Fatalf("no script should be written before the directory check: %v", got)
	}
}

func TestPythonRunnerScriptEmbedsSpecValues(t *testing.T) {
	scriptsDir := t.TempDir()
	r := NewPythonRunner(scriptsDir, "python3", time.Minute)

	spec := TaskSpec{
		ResumeDir:   "/srv/resumes",
		Description: `line one "quoted"` + "\nline two",
		APIKey:      "sk-secret",
		Workers:     4,
	}
	path, err := r.writeScript(spec)
	if err != nil {
		t.Fatalf("write script: %v", err)
	}
	defer os.Remove(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script := string(raw)
	for _, want := range []string{
		pyString(spec.APIKey),
		pyString(spec.ResumeDir),
		pyString(spec.Description),
		"max_workers=4",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q", want)
		}
	}
}
