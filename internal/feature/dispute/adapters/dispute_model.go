package adapters

import (
	"time"

	"credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/platform/db"
)

// DisputeModel is the GORM model for the disputes table.
type DisputeModel struct {
	ID            string  `gorm:"primaryKey;size:36"`
	UserID        string  `gorm:"index;size:36;not null"`
	Title         string  `gorm:"size:200;not null"`
	Description   string  `gorm:"type:text;not null"`
	DisputeReason string  `gorm:"size:32;not null"`
	Status        string  `gorm:"size:16;not null;default:pending;index"`
	AccountName   *string `gorm:"size:100"`
	AccountNumber *string `gorm:"size:50"`
	CreditorName  *string `gorm:"size:100"`
	DisputeAmount *float64
	DateOfService *time.Time

	SupportingDocuments []entity.SupportingDocument `gorm:"serializer:json"`

	AdminNotes      *string `gorm:"type:text"`
	ResolutionNotes *string `gorm:"type:text"`
	SubmittedAt     *time.Time
	ResolvedAt      *time.Time
	Priority        string  `gorm:"size:8;not null;default:medium"`
	DisputeLetter   *string `gorm:"type:text"`

	Owner *db.OwnerModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}

// ToEntity converts the GORM model to a domain entity.
func (m *DisputeModel) ToEntity() *entity.Dispute {
	docs := m.SupportingDocuments
	if docs == nil {
		docs = []entity.SupportingDocument{}
	}
	return &entity.Dispute{
		ID:                  m.ID,
		UserID:              m.UserID,
		Owner:               m.Owner.ToIdentity(),
		Title:               m.Title,
		Description:         m.Description,
		DisputeReason:       entity.Reason(m.DisputeReason),
		Status:              entity.Status(m.Status),
		AccountName:         m.AccountName,
		AccountNumber:       m.AccountNumber,
		CreditorName:        m.CreditorName,
		DisputeAmount:       m.DisputeAmount,
		DateOfService:       m.DateOfService,
		SupportingDocuments: docs,
		AdminNotes:          m.AdminNotes,
		ResolutionNotes:     m.ResolutionNotes,
		SubmittedAt:         m.SubmittedAt,
		ResolvedAt:          m.ResolvedAt,
		Priority:            entity.Priority(m.Priority),
		DisputeLetter:       m.DisputeLetter,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// DisputeModelFromEntity converts a domain entity to a GORM model. The owner
// is never written through the model.
func DisputeModelFromEntity(d *entity.Dispute) *DisputeModel {
	return &DisputeModel{
		ID:                  d.ID,
		UserID:              d.UserID,
		Title:               d.Title,
		Description:         d.Description,
		DisputeReason:       string(d.DisputeReason),
		Status:              string(d.Status),
		AccountName:         d.AccountName,
		AccountNumber:       d.AccountNumber,
		CreditorName:        d.CreditorName,
		DisputeAmount:       d.DisputeAmount,
		DateOfService:       d.DateOfService,
		SupportingDocuments: d.SupportingDocuments,
		AdminNotes:          d.AdminNotes,
		ResolutionNotes:     d.ResolutionNotes,
		SubmittedAt:         d.SubmittedAt,
		ResolvedAt:          d.ResolvedAt,
		Priority:            string(d.Priority),
		DisputeLetter:       d.DisputeLetter,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
