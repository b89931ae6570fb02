package model

import "time"

// Profile roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account known to the auth provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile holds the application-level attributes of a user.
type Profile struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"` // "user" | "admin"
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
