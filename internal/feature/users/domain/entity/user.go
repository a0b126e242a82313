// Package entity defines the domain entities for the users feature.
package entity

import "time"

// Role classifies what a user is allowed to do in the system.
type Role string

// Valid roles for a user account.
const (
	RoleAdmin     Role = "Admin"
	RoleCandidate Role = "Candidate"
	RoleClient    Role = "Client"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCandidate, RoleClient:
		return true
	}
	return false
}

// User represents a registered identity record in the system.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user, generated by the store.
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lowercased.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords and must never be serialized outward.
	Password string `gorm:"size:255;not null" json:"password,omitempty"`

	// Role determines the user's authorization level.
	Role Role `gorm:"size:16;not null" json:"role"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null" json:"name"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the subset of User fields safe to return externally.
// It never carries the password hash.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// Public returns the externally visible projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}
