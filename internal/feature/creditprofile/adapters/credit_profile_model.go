package adapters

import (
	"time"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/platform/db"
)

// CreditProfileModel is the GORM model for the credit_profiles table.
// Embedded report items are stored as JSON columns.
type CreditProfileModel struct {
	ID               string    `gorm:"primaryKey;size:36"`
	UserID           string    `gorm:"uniqueIndex;size:36;not null"`
	CreditScore      int       `gorm:"not null"`
	CreditScoreRange string    `gorm:"size:16;not null"`
	ReportDate       time.Time `gorm:"not null"`

	PaymentHistory        float64
	CreditUtilization     float64
	LengthOfCreditHistory float64
	NewCredit             float64
	CreditMix             float64

	TotalAccounts    int
	OpenAccounts     int
	ClosedAccounts   int
	TotalCreditLimit float64
	TotalBalance     float64
	DerogatoryMarks  int
	HardInquiries    int

	Accounts      []entity.CreditAccount `gorm:"serializer:json"`
	Inquiries     []entity.CreditInquiry `gorm:"serializer:json"`
	PublicRecords []entity.PublicRecord  `gorm:"serializer:json"`

	Owner *db.OwnerModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (CreditProfileModel) TableName() string {
	return "credit_profiles"
}

// ToEntity converts the GORM model to a domain entity.
func (m *CreditProfileModel) ToEntity() *entity.CreditProfile {
	p := &entity.CreditProfile{
		ID:                    m.ID,
		UserID:                m.UserID,
		CreditScore:           m.CreditScore,
		CreditScoreRange:      m.CreditScoreRange,
		ReportDate:            m.ReportDate,
		PaymentHistory:        m.PaymentHistory,
		CreditUtilization:     m.CreditUtilization,
		LengthOfCreditHistory: m.LengthOfCreditHistory,
		NewCredit:             m.NewCredit,
		CreditMix:             m.CreditMix,
		TotalAccounts:         m.TotalAccounts,
		OpenAccounts:          m.OpenAccounts,
		ClosedAccounts:        m.ClosedAccounts,
		TotalCreditLimit:      m.TotalCreditLimit,
		TotalBalance:          m.TotalBalance,
		DerogatoryMarks:       m.DerogatoryMarks,
		HardInquiries:         m.HardInquiries,
		Accounts:              m.Accounts,
		Inquiries:             m.Inquiries,
		PublicRecords:         m.PublicRecords,
		Owner:                 m.Owner.ToIdentity(),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if p.PublicRecords == nil {
		p.PublicRecords = []entity.PublicRecord{}
	}
	return p
}

// CreditProfileModelFromEntity converts a domain entity to a GORM model.
func CreditProfileModelFromEntity(p *entity.CreditProfile) *CreditProfileModel {
	return &CreditProfileModel{
		ID:                    p.ID,
		UserID:                p.UserID,
		CreditScore:           p.CreditScore,
		CreditScoreRange:      p.CreditScoreRange,
		ReportDate:            p.ReportDate,
		PaymentHistory:        p.PaymentHistory,
		CreditUtilization:     p.CreditUtilization,
		LengthOfCreditHistory: p.LengthOfCreditHistory,
		NewCredit:             p.NewCredit,
		CreditMix:             p.CreditMix,
		TotalAccounts:         p.TotalAccounts,
		OpenAccounts:          p.OpenAccounts,
		ClosedAccounts:        p.ClosedAccounts,
		TotalCreditLimit:      p.TotalCreditLimit,
		TotalBalance:          p.TotalBalance,
		DerogatoryMarks:       p.DerogatoryMarks,
		HardInquiries:         p.HardInquiries,
		Accounts:              p.Accounts,
		Inquiries:             p.Inquiries,
		PublicRecords:         p.PublicRecords,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
