package internships

import "time"

// Internship is an admin-created internship posting.
type Internship struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Duration       string    `json:"duration"`
	Skills         []string  `json:"skills"`
	FacultyID      string    `json:"facultyId"`
	FacultyName    string    `json:"facultyName,omitempty"`
	Slots          *int      `json:"slots,omitempty"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	DescriptionKey string    `json:"descriptionKey,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
