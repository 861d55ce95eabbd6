// Package adapters provides the GORM repository for credit profiles.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/feature/creditprofile/usecase"
	"credit_backend/internal/platform/db"
)

type creditProfileGorm struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*creditProfileGorm)(nil)

// NewCreditProfileRepository creates a credit profile repository backed by db.
func NewCreditProfileRepository(db *gorm.DB) *creditProfileGorm {
	return &creditProfileGorm{db: db}
}

func (r *creditProfileGorm) FindByUserID(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	var m CreditProfileModel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("user_id = ?", userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Create inserts the profile and copies generated timestamps back to it. A
// second profile for the same user yields usecase.ErrProfileExists.
func (r *creditProfileGorm) Create(ctx context.Context, p *entity.CreditProfile) error {
	m := CreditProfileModelFromEntity(p)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrProfileExists
		}
		return err
	}
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *creditProfileGorm) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CreditProfileModel{}).Error
}

// ListAll returns every profile with its owner, newest first.
func (r *creditProfileGorm) ListAll(ctx context.Context) ([]*entity.CreditProfile, error) {
	var models []CreditProfileModel
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entity.CreditProfile, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}
