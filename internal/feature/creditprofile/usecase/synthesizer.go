package usecase

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"credit_backend/internal/feature/creditprofile/domain/entity"
)

const (
	baseScore = 720

	// score jitter is uniform in [-scoreJitter, scoreJitter)
	scoreJitter = 20
)

// RandomSource supplies the score jitter. *rand.Rand satisfies it but is not
// safe for concurrent use.
type RandomSource interface {
	Intn(n int) int
}

// globalSource draws from the locked top-level math/rand source.
type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mockAccounts returns the fixed tradelines of a synthesized report, each with a fresh id.
func mockAccounts() []entity.CreditAccount {
	return []entity.CreditAccount{
		{
			ID:             uuid.NewString(),
			AccountName:    "Chase Freedom Unlimited",
			AccountNumber:  "****-****-****-1234",
			AccountType:    entity.AccountCreditCard,
			AccountStatus:  entity.AccountOpen,
			CreditLimit:    ptr(5000.0),
			CurrentBalance: 1200,
			PaymentStatus:  entity.PaymentCurrent,
			DateOpened:     date(2020, time.March, 15),
			MonthsReviewed: 48,
			PaymentHistory: strings.Repeat("●", 48),
		},
		{
			ID:             uuid.NewString(),
			AccountName:    "Wells Fargo Auto Loan",
			AccountNumber:  "****-****-5678",
			AccountType:    entity.AccountAutoLoan,
			AccountStatus:  entity.AccountOpen,
			CurrentBalance: 15000,
			PaymentStatus:  entity.PaymentCurrent,
			DateOpened:     date(2021, time.June, 1),
			MonthsReviewed: 32,
			PaymentHistory: strings.Repeat("●", 32),
		},
		{
			ID:             uuid.NewString(),
			AccountName:    "Capital One Quicksilver",
			AccountNumber:  "****-****-****-9999",
			AccountType:    entity.AccountCreditCard,
			AccountStatus:  entity.AccountClosed,
			CreditLimit:    ptr(3000.0),
			CurrentBalance: 0,
			PaymentStatus:  entity.PaymentCurrent,
			DateOpened:     date(2018, time.January, 10),
			DateClosed:     ptr(date(2023, time.May, 15)),
			MonthsReviewed: 64,
			PaymentHistory: strings.Repeat("●", 64),
		},
	}
}

func mockInquiries() []entity.CreditInquiry {
	return []entity.CreditInquiry{
		{
			ID:           uuid.NewString(),
			InquiryType:  entity.InquiryHard,
			CreditorName: "American Express",
			InquiryDate:  date(2023, time.September, 15),
			Purpose:      ptr("Credit Card Application"),
		},
		{
			ID:           uuid.NewString(),
			InquiryType:  entity.InquiryHard,
			CreditorName: "Toyota Financial",
			InquiryDate:  date(2021, time.June, 1),
			Purpose:      ptr("Auto Loan"),
		},
	}
}

// Utilization returns balance/limit as a percentage rounded to two
// decimals, or 0 when there is no limit.
func Utilization(balance, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return round2(balance / limit * 100)
}

// Score derives a credit score from utilization plus jitter drawn from rnd.
func Score(utilization float64, rnd RandomSource) int {
	score := baseScore
	switch {
	case utilization > 30:
		score -= 30
	case utilization > 10:
		score -= 10
	}
	score += rnd.Intn(2*scoreJitter) - scoreJitter
	return entity.ClampScore(score)
}

// Synthesize builds a new mock profile for userID. Every call yields fresh ids.
func Synthesize(userID string, now time.Time, rnd RandomSource) *entity.CreditProfile {
	accounts := mockAccounts()
	inquiries := mockInquiries()

	var totalLimit, totalBalance float64
	var open, closed int
	for _, acc := range accounts {
		if acc.CreditLimit != nil {
			totalLimit += *acc.CreditLimit
		}
		totalBalance += acc.CurrentBalance
		switch acc.AccountStatus {
		case entity.AccountOpen:
			open++
		case entity.AccountClosed:
			closed++
		}
	}

	hard := 0
	for _, inq := range inquiries {
		if inq.InquiryType == entity.InquiryHard {
			hard++
		}
	}

	utilization := Utilization(totalBalance, totalLimit)

	return &entity.CreditProfile{
		ID:                    uuid.NewString(),
		UserID:                userID,
		CreditScore:           Score(utilization, rnd),
		CreditScoreRange:      entity.ScoreRange,
		ReportDate:            now,
		PaymentHistory:        95,
		CreditUtilization:     utilization,
		LengthOfCreditHistory: 85,
		NewCredit:             90,
		CreditMix:             80,
		TotalAccounts:         len(accounts),
		OpenAccounts:          open,
		ClosedAccounts:        closed,
		TotalCreditLimit:      totalLimit,
		TotalBalance:          totalBalance,
		DerogatoryMarks:       0,
		HardInquiries:         hard,
		Accounts:              accounts,
		Inquiries:             inquiries,
		PublicRecords:         []entity.PublicRecord{},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
