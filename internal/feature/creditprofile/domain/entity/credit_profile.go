// Package entity defines the mocked credit report of a user.
package entity

import (
	"time"

	"credit_backend/internal/shared/identity"
)

const (
	MinScore = 300
	MaxScore = 850

	// ScoreRange is the scoring model range reported with every profile.
	ScoreRange = "300-850"
)

type AccountType string

const (
	AccountCreditCard   AccountType = "credit_card"
	AccountMortgage     AccountType = "mortgage"
	AccountAutoLoan     AccountType = "auto_loan"
	AccountPersonalLoan AccountType = "personal_loan"
	AccountStudentLoan  AccountType = "student_loan"
)

type AccountStatus string

const (
	AccountOpen   AccountStatus = "open"
	AccountClosed AccountStatus = "closed"
	AccountPaid   AccountStatus = "paid"
)

type PaymentStatus string

const (
	PaymentCurrent   PaymentStatus = "current"
	PaymentLate30    PaymentStatus = "late_30"
	PaymentLate60    PaymentStatus = "late_60"
	PaymentLate90    PaymentStatus = "late_90"
	PaymentChargeOff PaymentStatus = "charge_off"
)

type InquiryType string

const (
	InquiryHard InquiryType = "hard"
	InquirySoft InquiryType = "soft"
)

type RecordType string

const (
	RecordBankruptcy  RecordType = "bankruptcy"
	RecordTaxLien     RecordType = "tax_lien"
	RecordJudgment    RecordType = "judgment"
	RecordForeclosure RecordType = "foreclosure"
)

type RecordStatus string

const (
	RecordFiled      RecordStatus = "filed"
	RecordDischarged RecordStatus = "discharged"
	RecordSatisfied  RecordStatus = "satisfied"
	RecordDismissed  RecordStatus = "dismissed"
)

// CreditAccount is a tradeline on the report. PaymentHistory holds one glyph
// per reviewed month: ● on time, ○ late.
type CreditAccount struct {
	ID             string        `json:"id"`
	AccountName    string        `json:"accountName"`
	AccountNumber  string        `json:"accountNumber"`
	AccountType    AccountType   `json:"accountType"`
	AccountStatus  AccountStatus `json:"accountStatus"`
	CreditLimit    *float64      `json:"creditLimit,omitempty"`
	CurrentBalance float64       `json:"currentBalance"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	DateOpened     time.Time     `json:"dateOpened"`
	DateClosed     *time.Time    `json:"dateClosed,omitempty"`
	MonthsReviewed int           `json:"monthsReviewed"`
	PaymentHistory string        `json:"paymentHistory"`
}

type CreditInquiry struct {
	ID           string      `json:"id"`
	InquiryType  InquiryType `json:"inquiryType"`
	CreditorName string      `json:"creditorName"`
	InquiryDate  time.Time   `json:"inquiryDate"`
	Purpose      *string     `json:"purpose,omitempty"`
}

type PublicRecord struct {
	ID           string       `json:"id"`
	RecordType   RecordType   `json:"recordType"`
	Status       RecordStatus `json:"status"`
	Amount       *float64     `json:"amount,omitempty"`
	DateFiled    time.Time    `json:"dateFiled"`
	DateResolved *time.Time   `json:"dateResolved,omitempty"`
	Court        *string      `json:"court,omitempty"`
}

// CreditProfile is a user's credit report. A user has at most one; it is
// replaced wholesale on refresh.
type CreditProfile struct {
	ID               string
	UserID           string
	CreditScore      int
	CreditScoreRange string
	ReportDate       time.Time

	// factor scores, 0..100
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

	Accounts      []CreditAccount
	Inquiries     []CreditInquiry
	PublicRecords []PublicRecord

	// Owner is filled when the profile is loaded together with its user.
	Owner *identity.Identity

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScoreRangeLabel returns the rating band of a score.
func ScoreRangeLabel(score int) string {
	switch {
	case score >= 800:
		return "Exceptional"
	case score >= 740:
		return "Very Good"
	case score >= 670:
		return "Good"
	case score >= 580:
		return "Fair"
	default:
		return "Poor"
	}
}

// ClampScore bounds score to [MinScore, MaxScore].
func ClampScore(score int) int {
	return max(MinScore, min(MaxScore, score))
}
