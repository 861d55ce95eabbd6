package adapters

import (
	"time"

	"credit_backend/internal/feature/auth/domain/entity"
)

// SessionModel is a refresh session row. Rows go away with their user.
type SessionModel struct {
	ID        string     `gorm:"primaryKey;size:64"`
	UserID    string     `gorm:"index:idx_sessions_user_active,priority:1;size:36;not null"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	UserAgent string     `gorm:"size:512"`
	IPAddress string     `gorm:"size:45"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"index;index:idx_sessions_user_active,priority:2;not null"`
	RevokedAt *time.Time
}

func (SessionModel) TableName() string { return "sessions" }

func (m *SessionModel) ToEntity() *entity.Session {
	s := entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
	if m.RevokedAt != nil {
		t := *m.RevokedAt
		s.RevokedAt = &t
	}
	return &s
}

func SessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}
