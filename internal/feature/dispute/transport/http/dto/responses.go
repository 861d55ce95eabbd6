package dto

import (
	"time"

	"credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/feature/dispute/usecase"
	letter "credit_backend/internal/feature/letter/domain/entity"
)

type OwnerRes struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// DisputeRes is the wire shape of a dispute including derived age fields.
type DisputeRes struct {
	ID                  string                      `json:"id"`
	UserID              string                      `json:"userId"`
	User                *OwnerRes                   `json:"user,omitempty"`
	Title               string                      `json:"title"`
	Description         string                      `json:"description"`
	DisputeReason       string                      `json:"disputeReason"`
	Status              string                      `json:"status"`
	AccountName         *string                     `json:"accountName"`
	AccountNumber       *string                     `json:"accountNumber"`
	CreditorName        *string                     `json:"creditorName"`
	DisputeAmount       *float64                    `json:"disputeAmount"`
	DateOfService       *time.Time                  `json:"dateOfService"`
	SupportingDocuments []entity.SupportingDocument `json:"supportingDocuments"`
	AdminNotes          *string                     `json:"adminNotes"`
	ResolutionNotes     *string                     `json:"resolutionNotes"`
	SubmittedAt         *time.Time                  `json:"submittedAt"`
	ResolvedAt          *time.Time                  `json:"resolvedAt"`
	Priority            string                      `json:"priority"`
	DisputeLetter       *string                     `json:"disputeLetter"`
	DaysSinceCreated    int                         `json:"daysSinceCreated"`
	IsOverdue           bool                        `json:"isOverdue"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

type DisputeEnvelope struct {
	Message string     `json:"message"`
	Dispute DisputeRes `json:"dispute"`
}

type DisputeListEnvelope struct {
	Message  string       `json:"message"`
	Disputes []DisputeRes `json:"disputes"`
}

type StatsRes struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Submitted      int64   `json:"submitted"`
	UnderReview    int64   `json:"underReview"`
	Resolved       int64   `json:"resolved"`
	Rejected       int64   `json:"rejected"`
	ResolutionRate float64 `json:"resolutionRate"`
}

type StatsEnvelope struct {
	Message string   `json:"message"`
	Stats   StatsRes `json:"stats"`
}

type LetterEnvelope struct {
	Message              string     `json:"message"`
	Dispute              DisputeRes `json:"dispute"`
	Letter               string     `json:"letter"`
	GeneratedAt          time.Time  `json:"generatedAt"`
	EstimatedReadingTime int        `json:"estimatedReadingTime"`
}

// NewDisputeRes converts d, computing derived fields at now.
func NewDisputeRes(d *entity.Dispute, now time.Time) DisputeRes {
	docs := d.SupportingDocuments
	if docs == nil {
		docs = []entity.SupportingDocument{}
	}
	res := DisputeRes{
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
		SupportingDocuments: docs,
		AdminNotes:          d.AdminNotes,
		ResolutionNotes:     d.ResolutionNotes,
		SubmittedAt:         d.SubmittedAt,
		ResolvedAt:          d.ResolvedAt,
		Priority:            string(d.Priority),
		DisputeLetter:       d.DisputeLetter,
		DaysSinceCreated:    entity.DaysSinceCreated(d, now),
		IsOverdue:           entity.IsOverdue(d, now),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	if d.Owner != nil {
		res.User = &OwnerRes{
			ID:        d.Owner.ID,
			Email:     d.Owner.Email,
			FirstName: d.Owner.FirstName,
			LastName:  d.Owner.LastName,
			Role:      string(d.Owner.Role),
		}
	}
	return res
}

func NewDisputeList(ds []*entity.Dispute, now time.Time) []DisputeRes {
	out := make([]DisputeRes, 0, len(ds))
	for _, d := range ds {
		out = append(out, NewDisputeRes(d, now))
	}
	return out
}

func NewStatsRes(s *usecase.Stats) StatsRes {
	return StatsRes{
		Total:          s.Total,
		Pending:        s.Pending,
		Submitted:      s.Submitted,
		UnderReview:    s.UnderReview,
		Resolved:       s.Resolved,
		Rejected:       s.Rejected,
		ResolutionRate: s.ResolutionRate,
	}
}

func NewLetterEnvelope(d *entity.Dispute, l *letter.Letter, now time.Time) LetterEnvelope {
	return LetterEnvelope{
		Message:              "Dispute letter generated successfully",
		Dispute:              NewDisputeRes(d, now),
		Letter:               l.Letter,
		GeneratedAt:          l.GeneratedAt,
		EstimatedReadingTime: l.EstimatedReadingTime,
	}
}
