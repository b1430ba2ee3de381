package shortlist

import (
	"strings"
	"testing"
	"time"
)

func TestRenderCSV(t *testing.T) {
	result := Result{
		ShortlistedCandidates: []Shortlisted{
			{
				StudentName:  `Ann "The Ace" Lee`,
				StudentEmail: "ann@uni.edu",
				FileName:     "ann.pdf",
				Score:        0.91,
				AIAnalysis: Analysis{
					Skills:  []string{"Go", "SQL", "Docker", "K8s"},
					Reasons: []string{"strong backend", "team lead", "extra reason"},
				},
			},
			{
				StudentName:  "Bob",
				StudentEmail: "bob@uni.edu",
				FileName:     "bob.pdf",
				Score:        0.5,
				AIAnalysis: Analysis{
					Skills:  []string{"Python"},
					Reasons: []string{"relevant projects"},
				},
			},
		},
	}

	doc, err := RenderCSV(result)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(doc)), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Rank,Student Name,Student Email,Match Score (%),Top Skills,AI Reasons,Resume File" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,") || !strings.HasPrefix(lines[2], "2,") {
		t.Fatalf("ranks must follow upstream order: %v", lines[1:])
	}
	if !strings.Contains(lines[1], ",91,") || !strings.Contains(lines[2], ",50,") {
		t.Fatalf("scores must be whole-number percentages: %v", lines[1:])
	}
	if !strings.Contains(lines[1], `"Ann ""The Ace"" Lee"`) {
		t.Fatalf("embedded quotes must be doubled: %s", lines[1])
	}
	if !strings.Contains(lines[1], "Go; SQL; Docker") || strings.Contains(lines[1], "K8s") {
		t.Fatalf("skills must be capped at 3: %s", lines[1])
	}
	if !strings.Contains(lines[1], "strong backend; team lead") || strings.Contains(lines[1], "extra reason") {
		t.Fatalf("reasons must be capped at 2: %s", lines[1])
	}
}

func TestCSVFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	got := CSVFileName("Campus App 2.0!", now)
	if got != "ai-shortlist-Campus-App-2-0--2026-08-31.csv" {
		t.Fatalf("unexpected file name: %s", got)
	}
}
