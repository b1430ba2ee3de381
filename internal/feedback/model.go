package feedback

import "time"

const (
	StatusOpen     = "OPEN"
	StatusResolved = "RESOLVED"
)

// Ticket is a feedback ticket submitted by any portal user.
type Ticket struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	ResolvedAt time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy string    `json:"resolvedBy,omitempty"`
}
