package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authadapters "credit_backend/internal/feature/auth/adapters"
	authentity "credit_backend/internal/feature/auth/domain/entity"
	profileadapters "credit_backend/internal/feature/creditprofile/adapters"
	profile "credit_backend/internal/feature/creditprofile/domain/entity"
	disputeadapters "credit_backend/internal/feature/dispute/adapters"
	dispute "credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/shared/identity"
)

const (
	adminEmail    = "admin@creditmanager.com"
	adminPassword = "admin123"
	johnEmail     = "john.doe@example.com"
	janeEmail     = "jane.smith@example.com"
	userPassword  = "user123"

	seedCost = 12
)

type userStore interface {
	Create(ctx context.Context, u *authentity.User) error
}

type profileStore interface {
	Create(ctx context.Context, p *profile.CreditProfile) error
}

type disputeStore interface {
	Create(ctx context.Context, d *dispute.Dispute) error
}

type seeder struct {
	db       *gorm.DB
	users    userStore
	profiles profileStore
	disputes disputeStore
	cost     int
	now      func() time.Time
	log      *zap.Logger
}

func newSeeder(db *gorm.DB, log *zap.Logger) *seeder {
	return &seeder{
		db:       db,
		users:    authadapters.NewUserRepository(db),
		profiles: profileadapters.NewCreditProfileRepository(db),
		disputes: disputeadapters.NewDisputeRepository(db),
		cost:     seedCost,
		now:      time.Now,
		log:      log,
	}
}

// Run wipes every table and inserts the demo data set.
func (s *seeder) Run(ctx context.Context) error {
	if err := s.reset(ctx); err != nil {
		return err
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte(userPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash user password: %w", err)
	}

	admin := &authentity.User{Email: adminEmail, Password: string(adminHash), FirstName: "Admin", LastName: "User", Role: identity.RoleAdmin}
	john := &authentity.User{Email: johnEmail, Password: string(userHash), FirstName: "John", LastName: "Doe", Role: identity.RoleUser}
	jane := &authentity.User{Email: janeEmail, Password: string(userHash), FirstName: "Jane", LastName: "Smith", Role: identity.RoleUser}
	for _, u := range []*authentity.User{admin, john, jane} {
		if err := s.users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
	}

	now := s.now()
	for _, p := range []*profile.CreditProfile{johnProfile(john.ID, now), janeProfile(jane.ID, now)} {
		if err := s.profiles.Create(ctx, p); err != nil {
			return fmt.Errorf("create credit profile: %w", err)
		}
	}

	for _, d := range sampleDisputes(john.ID, jane.ID) {
		if err := s.disputes.Create(ctx, d); err != nil {
			return fmt.Errorf("create dispute %q: %w", d.Title, err)
		}
	}

	s.log.Info("seed complete", zap.Int("users", 3), zap.Int("profiles", 2), zap.Int("disputes", 3))
	return nil
}

// reset deletes children before users so foreign keys hold.
func (s *seeder) reset(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []any{
		&disputeadapters.DisputeModel{},
		&profileadapters.CreditProfileModel{},
		&authadapters.SessionModel{},
		&authadapters.UserModel{},
	} {
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func johnProfile(userID string, now time.Time) *profile.CreditProfile {
	return &profile.CreditProfile{
		ID:                    uuid.NewString(),
		UserID:                userID,
		CreditScore:           720,
		CreditScoreRange:      profile.ScoreRange,
		ReportDate:            now,
		PaymentHistory:        95,
		CreditUtilization:     15.5,
		LengthOfCreditHistory: 85,
		NewCredit:             90,
		CreditMix:             80,
		TotalAccounts:         5,
		OpenAccounts:          3,
		ClosedAccounts:        2,
		TotalCreditLimit:      25000,
		TotalBalance:          3875,
		DerogatoryMarks:       0,
		HardInquiries:         2,
		Accounts: []profile.CreditAccount{
			{
				ID:             uuid.NewString(),
				AccountName:    "Chase Freedom Unlimited",
				AccountNumber:  "****-****-****-1234",
				AccountType:    profile.AccountCreditCard,
				AccountStatus:  profile.AccountOpen,
				CreditLimit:    ptr(8000.0),
				CurrentBalance: 1200,
				PaymentStatus:  profile.PaymentCurrent,
				DateOpened:     day(2020, time.March, 15),
				MonthsReviewed: 48,
				PaymentHistory: strings.Repeat("●", 48),
			},
			{
				ID:             uuid.NewString(),
				AccountName:    "Wells Fargo Auto Loan",
				AccountNumber:  "****-****-5678",
				AccountType:    profile.AccountAutoLoan,
				AccountStatus:  profile.AccountOpen,
				CurrentBalance: 15000,
				PaymentStatus:  profile.PaymentCurrent,
				DateOpened:     day(2021, time.June, 1),
				MonthsReviewed: 32,
				PaymentHistory: strings.Repeat("●", 32),
			},
		},
		Inquiries: []profile.CreditInquiry{
			{
				ID:           uuid.NewString(),
				InquiryType:  profile.InquiryHard,
				CreditorName: "American Express",
				InquiryDate:  day(2023, time.September, 15),
				Purpose:      ptr("Credit Card Application"),
			},
		},
		PublicRecords: []profile.PublicRecord{},
	}
}

func janeProfile(userID string, now time.Time) *profile.CreditProfile {
	return &profile.CreditProfile{
		ID:                    uuid.NewString(),
		UserID:                userID,
		CreditScore:           650,
		CreditScoreRange:      profile.ScoreRange,
		ReportDate:            now,
		PaymentHistory:        80,
		CreditUtilization:     45.2,
		LengthOfCreditHistory: 70,
		NewCredit:             75,
		CreditMix:             60,
		TotalAccounts:         7,
		OpenAccounts:          4,
		ClosedAccounts:        3,
		TotalCreditLimit:      18000,
		TotalBalance:          8140,
		DerogatoryMarks:       1,
		HardInquiries:         4,
		Accounts: []profile.CreditAccount{
			{
				ID:             uuid.NewString(),
				AccountName:    "Capital One Quicksilver",
				AccountNumber:  "****-****-****-9999",
				AccountType:    profile.AccountCreditCard,
				AccountStatus:  profile.AccountOpen,
				CreditLimit:    ptr(3000.0),
				CurrentBalance: 2700,
				PaymentStatus:  profile.PaymentLate30,
				DateOpened:     day(2019, time.January, 10),
				MonthsReviewed: 60,
				PaymentHistory: strings.Repeat("●", 6) + "○○" + strings.Repeat("●", 52),
			},
		},
		Inquiries: []profile.CreditInquiry{
			{
				ID:           uuid.NewString(),
				InquiryType:  profile.InquiryHard,
				CreditorName: "Best Buy",
				InquiryDate:  day(2023, time.November, 20),
				Purpose:      ptr("Store Card Application"),
			},
		},
		PublicRecords: []profile.PublicRecord{},
	}
}

func sampleDisputes(johnID, janeID string) []*dispute.Dispute {
	return []*dispute.Dispute{
		{
			ID:            uuid.NewString(),
			UserID:        johnID,
			Title:         "Inaccurate Credit Card Balance",
			Description:   "The balance shown for my Chase Freedom card is incorrect. The current balance should be $800, not $1,200.",
			DisputeReason: dispute.ReasonInaccurateInfo,
			AccountName:   ptr("Chase Freedom Unlimited"),
			AccountNumber: ptr("****-****-****-1234"),
			CreditorName:  ptr("Chase Bank"),
			DisputeAmount: ptr(400.0),
			Status:        dispute.StatusUnderReview,
			Priority:      dispute.PriorityMedium,
			SubmittedAt:   ptr(day(2024, time.January, 15)),
			AdminNotes:    ptr("Reviewing documentation provided by user."),
		},
		{
			ID:            uuid.NewString(),
			UserID:        johnID,
			Title:         "Unknown Account on Report",
			Description:   "There is an account from XYZ Credit that I never opened. This appears to be fraudulent.",
			DisputeReason: dispute.ReasonIdentityTheft,
			AccountName:   ptr("XYZ Credit Card"),
			AccountNumber: ptr("****-****-****-5555"),
			CreditorName:  ptr("XYZ Financial"),
			DisputeAmount: ptr(2500.0),
			Status:        dispute.StatusPending,
			Priority:      dispute.PriorityHigh,
		},
		{
			ID:              uuid.NewString(),
			UserID:          janeID,
			Title:           "Paid Off Student Loan Still Showing Balance",
			Description:     "My student loan was paid off in full in December 2023, but it still shows an outstanding balance.",
			DisputeReason:   dispute.ReasonPaidOff,
			AccountName:     ptr("Federal Student Loan"),
			AccountNumber:   ptr("****-****-7890"),
			CreditorName:    ptr("Department of Education"),
			DisputeAmount:   ptr(15000.0),
			Status:          dispute.StatusResolved,
			Priority:        dispute.PriorityMedium,
			SubmittedAt:     ptr(day(2023, time.December, 1)),
			ResolvedAt:      ptr(day(2024, time.January, 10)),
			ResolutionNotes: ptr("Account verified as paid in full. Removed from credit report."),
		},
	}
}
