package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleKader = "kader"
)

// User models an authenticated actor in the system. Kader accounts belong to
// community health volunteers; admin accounts manage them.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified and the subject looked up.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the principal passes admin-only gates.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
