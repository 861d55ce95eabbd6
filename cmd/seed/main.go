// Command seed resets the database and loads demo accounts, credit profiles
// and disputes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	authadapters "credit_backend/internal/feature/auth/adapters"
	profileadapters "credit_backend/internal/feature/creditprofile/adapters"
	disputeadapters "credit_backend/internal/feature/dispute/adapters"
	"credit_backend/internal/platform/config"
	"credit_backend/internal/platform/db"
	"credit_backend/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// the seed always migrates; it may run before the server ever has
	cfg.DB.RunMigrations = true
	gdb, err := db.Open(cfg.DB, log,
		&authadapters.UserModel{},
		&authadapters.SessionModel{},
		&profileadapters.CreditProfileModel{},
		&disputeadapters.DisputeModel{},
	)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s := newSeeder(gdb, log)
	if err := s.Run(ctx); err != nil {
		return err
	}

	log.Info("initial data seeded",
		zap.String("admin", adminEmail+" / "+adminPassword),
		zap.Strings("users", []string{johnEmail + " / " + userPassword, janeEmail + " / " + userPassword}),
	)
	return nil
}
