package applications

import "time"

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Application is a student's application to an internship posting.
type Application struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"studentId"`
	InternshipID    string    `json:"internshipId"`
	Status          string    `json:"status"`
	ResumeKey       string    `json:"resumeKey,omitempty"`
	InternshipTitle string    `json:"internshipTitle,omitempty"`
	StudentName     string    `json:"studentName,omitempty"`
	StudentEmail    string    `json:"studentEmail,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
