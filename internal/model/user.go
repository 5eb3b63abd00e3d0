package model

import "time"

// Role is the authorization level of a user. New registrations always get
// RoleUser; promotion to RoleAdmin is an administrative action performed
// outside this service.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an application user record as kept by the user store.
// The ID is assigned once at registration and never changes, and Username
// is unique (case-sensitive) across the whole store. PasswordHash carries
// the bcrypt hash and must never leave the store/lifecycle boundary: it is
// excluded from JSON so that no response or token claim can pick it up by
// accident.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the response-safe view of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// PublicUser is the subset of User exposed in API responses.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
