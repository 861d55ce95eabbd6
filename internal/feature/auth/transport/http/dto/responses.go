package dto

import (
	"time"

	"credit_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of a user. It never carries the password hash.
type UserRes struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthRes is returned by register, login, refresh and regenerate-token.
type AuthRes struct {
	Message      string  `json:"message"`
	User         UserRes `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresIn    int64   `json:"expiresIn"`
}

type ProfileRes struct {
	User UserRes `json:"user"`
}

func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
