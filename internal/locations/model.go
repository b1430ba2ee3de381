package locations

import "time"

// Location is a bookable room or space.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Building  string    `json:"building,omitempty"`
	Capacity  int       `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Booking reserves a location for a half-open interval [StartsAt, EndsAt).
type Booking struct {
	ID         string    `json:"id"`
	LocationID string    `json:"locationId"`
	UserID     string    `json:"userId"`
	Purpose    string    `json:"purpose,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Overlaps reports whether two bookings share any time.
func (b Booking) Overlaps(other Booking) bool {
	return b.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(b.EndsAt)
}
