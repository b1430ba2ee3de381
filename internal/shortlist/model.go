package shortlist

// Candidate is a ranked applicant as returned by the external ranking tool,
// prior to correlation with stored project requests.
type Candidate struct {
	FileName string         `json:"file_name"`
	FilePath string         `json:"file_path"`
	Score    float64        `json:"score"`
	Name     string         `json:"name"`
	Skills   []string       `json:"skills"`
	Reasons  []string       `json:"reasons"`
	Metadata map[string]any `json:"metadata"`
}

// Analysis is the candidate-level output carried into the response.
type Analysis struct {
	Name     string         `json:"name"`
	Skills   []string       `json:"skills"`
	Reasons  []string       `json:"reasons"`
	Metadata map[string]any `json:"metadata"`
}

// Shortlisted is a candidate joined to the pending request it was matched to.
type Shortlisted struct {
	RequestID    string   `json:"request_id"`
	StudentID    string   `json:"student_id"`
	StudentName  string   `json:"student_name"`
	StudentEmail string   `json:"student_email"`
	FileName     string   `json:"file_name"`
	FilePath     string   `json:"file_path"`
	Score        float64  `json:"score"`
	AIAnalysis   Analysis `json:"ai_analysis"`
}

// ProjectSummary is the slice of project fields echoed in the response.
type ProjectSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Result is the outcome of one shortlist run. Constructed per request, never
// persisted.
type Result struct {
	Project               ProjectSummary `json:"project"`
	TotalApplications     int            `json:"total_applications"`
	ShortlistedCandidates []Shortlisted  `json:"shortlisted_candidates"`
	PromptUsed            string         `json:"prompt_used"`
	Dropped               int            `json:"-"`
	DurationMs            int64          `json:"-"`
}
