// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"credit_backend/internal/feature/auth/domain/entity"
	"credit_backend/internal/feature/auth/usecase"
	"credit_backend/internal/platform/db"
	"credit_backend/internal/shared/identity"
)

// userGorm is the GORM implementation of usecase.UserRepository. It also
// resolves identities for the other features.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a user repository backed by db.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user. A duplicate email yields usecase.ErrEmailAlreadyExists.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	model := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	*u = *model.ToEntity()
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound if no user has the email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID returns usecase.ErrUserNotFound if the id is unknown.
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGorm) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ResolveIdentity implements the identity resolver consumed by the dispute
// and credit profile features.
func (r *userGorm) ResolveIdentity(ctx context.Context, userID string) (identity.Identity, error) {
	u, err := r.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			return identity.Identity{}, identity.ErrUnknownUser
		}
		return identity.Identity{}, err
	}
	return u.Identity(), nil
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}
