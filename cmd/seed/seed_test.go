package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authadapters "credit_backend/internal/feature/auth/adapters"
	profileadapters "credit_backend/internal/feature/creditprofile/adapters"
	disputeadapters "credit_backend/internal/feature/dispute/adapters"
	dispute "credit_backend/internal/feature/dispute/domain/entity"
	"credit_backend/internal/shared/identity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&authadapters.UserModel{},
		&authadapters.SessionModel{},
		&profileadapters.CreditProfileModel{},
		&disputeadapters.DisputeModel{},
	))
	return db
}

func newTestSeeder(t *testing.T) (*seeder, *gorm.DB) {
	db := setupTestDB(t)
	s := newSeeder(db, zap.NewNop())
	s.cost = bcrypt.MinCost
	s.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }
	return s, db
}

func TestSeeder_Run(t *testing.T) {
	s, db := newTestSeeder(t)
	ctx := context.Background()

	require.NoError(t, s.Run(ctx))

	users := authadapters.NewUserRepository(db)
	admin, err := users.FindByEmail(ctx, adminEmail)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(adminPassword)))

	john, err := users.FindByEmail(ctx, johnEmail)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, john.Role)

	p, err := profileadapters.NewCreditProfileRepository(db).FindByUserID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, 720, p.CreditScore)
	assert.Len(t, p.Accounts, 2)

	disputes, err := disputeadapters.NewDisputeRepository(db).ListByUser(ctx, john.ID)
	require.NoError(t, err)
	assert.Len(t, disputes, 2)

	counts, err := disputeadapters.NewDisputeRepository(db).CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[dispute.StatusResolved])
}

func TestSeeder_RunIsRepeatable(t *testing.T) {
	s, db := newTestSeeder(t)
	ctx := context.Background()

	require.NoError(t, s.Run(ctx))
	require.NoError(t, s.Run(ctx))

	var n int64
	require.NoError(t, db.Model(&authadapters.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
	require.NoError(t, db.Model(&disputeadapters.DisputeModel{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}
