package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/feature/creditprofile/usecase"
	"credit_backend/internal/platform/db"
	"credit_backend/internal/shared/identity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&db.OwnerModel{}, &CreditProfileModel{}), "failed to migrate tables")
	return gdb
}

func seedOwner(t *testing.T, gdb *gorm.DB, id, email string) {
	t.Helper()
	require.NoError(t, gdb.Create(&db.OwnerModel{
		ID: id, Email: email, FirstName: "Jane", LastName: "Smith", Role: string(identity.RoleUser),
	}).Error)
}

func newProfile(userID string, score int, createdAt time.Time) *entity.CreditProfile {
	limit := 5000.0
	return &entity.CreditProfile{
		ID:               "p-" + userID,
		UserID:           userID,
		CreditScore:      score,
		CreditScoreRange: entity.ScoreRangeLabel(score),
		ReportDate:       createdAt,
		PaymentHistory:   95,
		TotalAccounts:    1,
		OpenAccounts:     1,
		TotalCreditLimit: limit,
		TotalBalance:     1250,
		Accounts: []entity.CreditAccount{{
			ID:             "a-1",
			AccountName:    "Chase Freedom",
			AccountNumber:  "****1234",
			AccountType:    entity.AccountCreditCard,
			AccountStatus:  entity.AccountOpen,
			CreditLimit:    &limit,
			CurrentBalance: 1250,
			PaymentStatus:  entity.PaymentCurrent,
			DateOpened:     time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC),
			MonthsReviewed: 24,
			PaymentHistory: "●●●●○●",
		}},
		Inquiries: []entity.CreditInquiry{{
			ID:           "i-1",
			InquiryType:  entity.InquiryHard,
			CreditorName: "Capital One",
			InquiryDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		}},
		PublicRecords: []entity.PublicRecord{},
		CreatedAt:     createdAt,
	}
}

func TestCreditProfileGorm_CreateAndFind(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCreditProfileRepository(gdb)
	ctx := context.Background()
	seedOwner(t, gdb, "u-1", "jane@example.com")

	p := newProfile("u-1", 712, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, p))
	assert.False(t, p.UpdatedAt.IsZero())

	got, err := repo.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 712, got.CreditScore)
	assert.Equal(t, "Good", got.CreditScoreRange)
	require.Len(t, got.Accounts, 1)
	assert.Equal(t, "●●●●○●", got.Accounts[0].PaymentHistory)
	require.NotNil(t, got.Accounts[0].CreditLimit)
	assert.Equal(t, 5000.0, *got.Accounts[0].CreditLimit)
	require.Len(t, got.Inquiries, 1)
	assert.Equal(t, entity.InquiryHard, got.Inquiries[0].InquiryType)
	assert.NotNil(t, got.PublicRecords)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "jane@example.com", got.Owner.Email)
}

func TestCreditProfileGorm_FindByUserID_NotFound(t *testing.T) {
	repo := NewCreditProfileRepository(setupTestDB(t))

	_, err := repo.FindByUserID(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrProfileNotFound)
}

func TestCreditProfileGorm_OneProfilePerUser(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCreditProfileRepository(gdb)
	ctx := context.Background()
	seedOwner(t, gdb, "u-1", "jane@example.com")

	require.NoError(t, repo.Create(ctx, newProfile("u-1", 700, time.Now())))
	dup := newProfile("u-1", 650, time.Now())
	dup.ID = "p-other"
	assert.ErrorIs(t, repo.Create(ctx, dup), usecase.ErrProfileExists)

	got, err := repo.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 700, got.CreditScore)
}

func TestCreditProfileGorm_DeleteByUserID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCreditProfileRepository(gdb)
	ctx := context.Background()
	seedOwner(t, gdb, "u-1", "jane@example.com")
	require.NoError(t, repo.Create(ctx, newProfile("u-1", 700, time.Now())))

	require.NoError(t, repo.DeleteByUserID(ctx, "u-1"))
	_, err := repo.FindByUserID(ctx, "u-1")
	assert.ErrorIs(t, err, usecase.ErrProfileNotFound)

	// deleting nothing is not an error
	assert.NoError(t, repo.DeleteByUserID(ctx, "u-1"))
}

func TestCreditProfileGorm_ListAll_NewestFirst(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewCreditProfileRepository(gdb)
	ctx := context.Background()
	seedOwner(t, gdb, "u-1", "jane@example.com")
	seedOwner(t, gdb, "u-2", "john@example.com")

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newProfile("u-1", 700, base)))
	require.NoError(t, repo.Create(ctx, newProfile("u-2", 650, base.Add(time.Hour))))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u-2", all[0].UserID)
	assert.Equal(t, "u-1", all[1].UserID)
	require.NotNil(t, all[0].Owner)
	assert.Equal(t, "john@example.com", all[0].Owner.Email)
}
