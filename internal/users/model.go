package users

import "time"

// Roles recognized by the portal.
const (
	RoleAdmin   = "ADMIN"
	RoleFaculty = "FACULTY"
	RoleStudent = "STUDENT"
)

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	PictureURL string    `json:"pictureUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NormalizeRole maps free-form role input onto the canonical constants.
func NormalizeRole(raw string) string {
	switch raw {
	case RoleAdmin, "admin":
		return RoleAdmin
	case RoleFaculty, "faculty":
		return RoleFaculty
	case RoleStudent, "student":
		return RoleStudent
	default:
		return ""
	}
}
