// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"credit_backend/internal/shared/identity"
)

// User is a registered account. Password always holds a bcrypt hash.
type User struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      identity.Role

	// RefreshToken references the most recently issued session, nil after logout.
	RefreshToken *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns the public view of the user shared with other features.
func (u *User) Identity() identity.Identity {
	return identity.Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
