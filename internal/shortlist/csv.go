package shortlist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"Rank",
	"Student Name",
	"Student Email",
	"Match Score (%)",
	"Top Skills",
	"AI Reasons",
	"Resume File",
}

// RenderCSV writes the shortlisted candidates as a CSV document. Ranks
// follow the upstream ordering, scores become whole-number percentages, and
// quoting follows RFC 4180 (embedded quotes doubled).
func RenderCSV(r Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i, cand := range r.ShortlistedCandidates {
		row := []string{
			strconv.Itoa(i + 1),
			cand.StudentName,
			cand.StudentEmail,
			strconv.Itoa(int(math.Round(cand.Score * 100))),
			joinTop(cand.AIAnalysis.Skills, 3),
			joinTop(cand.AIAnalysis.Reasons, 2),
			cand.FileName,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFileName derives the attachment name from the project name and the
// current date, with non-alphanumeric runes replaced by dashes.
func CSVFileName(projectName string, now time.Time) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, projectName)
	return fmt.Sprintf("ai-shortlist-%s-%s.csv", sanitized, now.Format("2006-01-02"))
}

func joinTop(values []string, n int) string {
	if len(values) > n {
		values = values[:n]
	}
	return strings.Join(values, "; ")
}
