package adapters

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"credit_backend/internal/feature/auth/domain/entity"
	"credit_backend/internal/shared/identity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Email        string  `gorm:"uniqueIndex;size:255;not null"`
	Password     string  `gorm:"size:255;not null"`
	FirstName    string  `gorm:"size:100;not null"`
	LastName     string  `gorm:"size:100;not null"`
	Role         string  `gorm:"size:16;not null;default:user"`
	RefreshToken *string `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Password:     m.Password,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         identity.Role(m.Role),
		RefreshToken: m.RefreshToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Password:     u.Password,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		RefreshToken: u.RefreshToken,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
