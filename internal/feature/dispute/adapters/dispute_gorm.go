// Package adapters provides the GORM repository for disputes.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/feature/dispute/usecase"
)

// lifecycleColumns are the only columns written after creation.
var lifecycleColumns = []string{
	"status", "admin_notes", "resolution_notes",
	"submitted_at", "resolved_at", "dispute_letter", "updated_at",
}

type disputeGorm struct {
	db *gorm.DB
}

var _ usecase.DisputeRepository = (*disputeGorm)(nil)

func NewDisputeRepository(db *gorm.DB) *disputeGorm {
	return &disputeGorm{db: db}
}

func (r *disputeGorm) Create(ctx context.Context, d *entity.Dispute) error {
	m := DisputeModelFromEntity(d)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	d.CreatedAt = m.CreatedAt
	d.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *disputeGorm) FindByID(ctx context.Context, id string) (*entity.Dispute, error) {
	var m DisputeModel
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDisputeNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func (r *disputeGorm) ListByUser(ctx context.Context, userID string) ([]*entity.Dispute, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *disputeGorm) ListAll(ctx context.Context) ([]*entity.Dispute, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *disputeGorm) list(q *gorm.DB) ([]*entity.Dispute, error) {
	var models []DisputeModel
	if err := q.Preload("Owner").Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Dispute, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

// Update writes lifecycle columns, including nil values.
func (r *disputeGorm) Update(ctx context.Context, d *entity.Dispute) error {
	m := DisputeModelFromEntity(d)
	res := r.db.WithContext(ctx).
		Model(m).
		Select(lifecycleColumns).
		Omit(clause.Associations).
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDisputeNotFound
	}
	d.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *disputeGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DisputeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDisputeNotFound
	}
	return nil
}

func (r *disputeGorm) CountByStatus(ctx context.Context) (map[entity.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&DisputeModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[entity.Status]int64, len(rows))
	for _, row := range rows {
		out[entity.Status(row.Status)] = row.Count
	}
	return out, nil
}
