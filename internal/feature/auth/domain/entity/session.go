package entity

import "time"

// Session is one issued refresh token. ID is the token itself.
type Session struct {
	ID        string
	UserID    string
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// ActiveAt reports whether the session can be used at t.
func (s *Session) ActiveAt(t time.Time) bool {
	return s.RevokedAt == nil && t.Before(s.ExpiresAt)
}

func (s *Session) IsExpired() bool { return !time.Now().Before(s.ExpiresAt) }

func (s *Session) IsRevoked() bool { return s.RevokedAt != nil }

// IsValid is ActiveAt(time.Now()).
func (s *Session) IsValid() bool { return s.ActiveAt(time.Now()) }
