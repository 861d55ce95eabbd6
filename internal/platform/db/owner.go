package db

import "credit_backend/internal/shared/identity"

// OwnerModel is a read-only projection of the users table used to preload
// the owner of disputes and credit profiles. Writes must omit it.
type OwnerModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"size:255"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	Role      string `gorm:"size:16"`
}

func (OwnerModel) TableName() string {
	return "users"
}

// ToIdentity converts the projection to an identity. A nil receiver yields nil.
func (m *OwnerModel) ToIdentity() *identity.Identity {
	if m == nil || m.ID == "" {
		return nil
	}
	return &identity.Identity{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Role:      identity.Role(m.Role),
	}
}
