// Package identity holds the role model shared by every feature: who is calling
// and what they are allowed to do.
package identity

import "errors"

// Role is the authorization role of a user. It is one of exactly two values.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ErrUnknownUser is returned by resolvers when the user id does not exist.
var ErrUnknownUser = errors.New("unknown user")

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole converts s into a Role. An empty string yields RoleUser.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return "", errors.New("invalid role: " + s)
	}
	return r, nil
}

// Caller is the authenticated principal of a request.
type Caller struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Identity is a resolved user as seen by other features.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      Role
}

// Caller returns the identity as a request principal.
func (i Identity) Caller() Caller {
	return Caller{ID: i.ID, Role: i.Role}
}
