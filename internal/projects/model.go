package projects

import (
	"fmt"
	"time"
)

// Request statuses. A request is created PENDING and moves to exactly one of
// ACCEPTED or REJECTED.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Project is a faculty-created unit of work soliciting student applications.
type Project struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Description            string     `json:"description"`
	CreatedBy              string     `json:"createdBy"`
	AIPromptCustom         string     `json:"aiPromptCustom,omitempty"`
	ExpectedCompletionDate time.Time  `json:"expectedCompletionDate"`
	ModifiedBy             string     `json:"modifiedBy,omitempty"`
	ModifiedDate           *time.Time `json:"modifiedDate,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
}

// Request is a student's application to a project, carrying a resume reference.
type Request struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	StudentID    string    `json:"studentId"`
	Status       string    `json:"status"`
	ResumePath   string    `json:"resumePath"`
	StudentName  string    `json:"studentName,omitempty"`
	StudentEmail string    `json:"studentEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DefaultPrompt assembles the auto-generated ranking prompt for a project.
func DefaultPrompt(p Project) string {
	return fmt.Sprintf(
		"Project: %s\n\nDescription: %s\n\nRequirements: Looking for candidates with relevant skills and experience for this project.\n\nExpected completion: %s",
		p.Name,
		p.Description,
		p.ExpectedCompletionDate.Format("02 Jan 2006"),
	)
}
