// Package entity defines credit disputes and their lifecycle states.
package entity

import (
	"math"
	"time"

	"credit_backend/internal/shared/identity"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusResolved    Status = "resolved"
	StatusRejected    Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusUnderReview, StatusResolved, StatusRejected:
		return true
	}
	return false
}

type Reason string

const (
	ReasonIdentityTheft  Reason = "identity_theft"
	ReasonNotMine        Reason = "not_mine"
	ReasonInaccurateInfo Reason = "inaccurate_info"
	ReasonPaidOff        Reason = "paid_off"
	ReasonDuplicate      Reason = "duplicate"
	ReasonOutdated       Reason = "outdated"
	ReasonOther          Reason = "other"
)

func (r Reason) IsValid() bool {
	switch r {
	case ReasonIdentityTheft, ReasonNotMine, ReasonInaccurateInfo, ReasonPaidOff,
		ReasonDuplicate, ReasonOutdated, ReasonOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// OverdueAfterDays is the age past which an unresolved dispute is overdue.
const OverdueAfterDays = 30

// SupportingDocument is metadata of a file attached to a dispute.
type SupportingDocument struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	Description *string   `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type Dispute struct {
	ID     string
	UserID string
	// Owner is the joined identity of UserID.
	Owner *identity.Identity

	Title         string
	Description   string
	DisputeReason Reason
	Status        Status

	AccountName   *string
	AccountNumber *string
	CreditorName  *string
	DisputeAmount *float64
	DateOfService *time.Time

	SupportingDocuments []SupportingDocument

	AdminNotes      *string
	ResolutionNotes *string
	SubmittedAt     *time.Time
	ResolvedAt      *time.Time
	Priority        Priority
	DisputeLetter   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaysSinceCreated returns the number of started days between creation and now.
func DaysSinceCreated(d *Dispute, now time.Time) int {
	diff := now.Sub(d.CreatedAt)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// IsOverdue reports whether d is unresolved and older than OverdueAfterDays.
func IsOverdue(d *Dispute, now time.Time) bool {
	return d.Status != StatusResolved && DaysSinceCreated(d, now) > OverdueAfterDays
}
