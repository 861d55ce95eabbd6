package dto

import (
	"time"

	"credit_backend/internal/feature/creditprofile/domain/entity"
)

// OwnerRes identifies the user a profile belongs to in admin listings.
type OwnerRes struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreditProfileRes is the wire shape of a credit profile.
// ScoreRange is the rating label of the current score.
type CreditProfileRes struct {
	ID                    string                 `json:"id"`
	UserID                string                 `json:"userId"`
	CreditScore           int                    `json:"creditScore"`
	CreditScoreRange      string                 `json:"creditScoreRange"`
	ScoreRange            string                 `json:"scoreRange"`
	ReportDate            time.Time              `json:"reportDate"`
	PaymentHistory        float64                `json:"paymentHistory"`
	CreditUtilization     float64                `json:"creditUtilization"`
	LengthOfCreditHistory float64                `json:"lengthOfCreditHistory"`
	NewCredit             float64                `json:"newCredit"`
	CreditMix             float64                `json:"creditMix"`
	TotalAccounts         int                    `json:"totalAccounts"`
	OpenAccounts          int                    `json:"openAccounts"`
	ClosedAccounts        int                    `json:"closedAccounts"`
	TotalCreditLimit      float64                `json:"totalCreditLimit"`
	TotalBalance          float64                `json:"totalBalance"`
	DerogatoryMarks       int                    `json:"derogatoryMarks"`
	HardInquiries         int                    `json:"hardInquiries"`
	Accounts              []entity.CreditAccount `json:"accounts"`
	Inquiries             []entity.CreditInquiry `json:"inquiries"`
	PublicRecords         []entity.PublicRecord  `json:"publicRecords"`
	User                  *OwnerRes              `json:"user,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

type CreditProfileEnvelope struct {
	Message       string           `json:"message"`
	CreditProfile CreditProfileRes `json:"creditProfile"`
}

type CreditProfileListEnvelope struct {
	Message        string             `json:"message"`
	CreditProfiles []CreditProfileRes `json:"creditProfiles"`
}

// NewCreditProfileRes converts an entity, deriving the score label.
func NewCreditProfileRes(p *entity.CreditProfile) CreditProfileRes {
	res := CreditProfileRes{
		ID:                    p.ID,
		UserID:                p.UserID,
		CreditScore:           p.CreditScore,
		CreditScoreRange:      p.CreditScoreRange,
		ScoreRange:            entity.ScoreRangeLabel(p.CreditScore),
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
		Accounts:              nonNil(p.Accounts),
		Inquiries:             nonNil(p.Inquiries),
		PublicRecords:         nonNil(p.PublicRecords),
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.Owner != nil {
		res.User = &OwnerRes{
			ID:        p.Owner.ID,
			Email:     p.Owner.Email,
			FirstName: p.Owner.FirstName,
			LastName:  p.Owner.LastName,
		}
	}
	return res
}

func NewCreditProfileList(profiles []*entity.CreditProfile) []CreditProfileRes {
	out := make([]CreditProfileRes, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewCreditProfileRes(p))
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
