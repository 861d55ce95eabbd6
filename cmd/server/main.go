package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"credit_backend/internal/app/di"
	"credit_backend/internal/app/router"
	authadapters "credit_backend/internal/feature/auth/adapters"
	authhandler "credit_backend/internal/feature/auth/transport/handler"
	authusecase "credit_backend/internal/feature/auth/usecase"
	profileadapters "credit_backend/internal/feature/creditprofile/adapters"
	profilehandler "credit_backend/internal/feature/creditprofile/transport/handler"
	profileusecase "credit_backend/internal/feature/creditprofile/usecase"
	disputeadapters "credit_backend/internal/feature/dispute/adapters"
	disputehandler "credit_backend/internal/feature/dispute/transport/handler"
	disputeusecase "credit_backend/internal/feature/dispute/usecase"
	letterhandler "credit_backend/internal/feature/letter/transport/handler"
	"credit_backend/internal/platform/cache"
	"credit_backend/internal/platform/config"
	"credit_backend/internal/platform/db"
	platformhandler "credit_backend/internal/platform/http/handler"
	jwtmw "credit_backend/internal/platform/jwt"
	"credit_backend/internal/platform/logger"
	infraredis "credit_backend/internal/platform/redis"
)

const (
	shutdownTimeout = 10 * time.Second
	sessionSweep    = time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
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

	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set; authenticated routes will answer 500")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// users must migrate before the tables that reference them
	gdb, err := db.Open(cfg.DB, log,
		&authadapters.UserModel{},
		&authadapters.SessionModel{},
		&profileadapters.CreditProfileModel{},
		&disputeadapters.DisputeModel{},
	)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	var rdb *redisv9.Client
	if c, err := infraredis.NewRedisClient(ctx, cfg.Redis, log); err != nil {
		log.Warn("redis unavailable, running without cache", zap.Error(err))
	} else {
		rdb = c
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("failed to close redis client", zap.Error(err))
			}
		}()
	}

	// Repository
	users := authadapters.NewUserRepository(gdb)
	sessions := di.NewSessionRepository(rdb, gdb)
	profiles := cache.NewCachingCreditProfileRepository(rdb, cfg.ProfileCacheTTL,
		profileadapters.NewCreditProfileRepository(gdb), "creditprofile")
	disputes := disputeadapters.NewDisputeRepository(gdb)

	// Usecase
	authUC := authusecase.NewAuthUsecase(users, sessions, jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.AccessTTL), cfg.JWT.RefreshTTL, log)
	profileUC := profileusecase.NewCreditProfileUsecase(profiles, users, nil, log)
	letterUC := di.NewLetterUsecase(ctx, cfg.AI, log)
	disputeUC := disputeusecase.NewDisputeUsecase(disputes, users, letterUC, log)

	// Handler
	engine := router.NewRouter(router.Handlers{
		Health:   platformhandler.NewHealthHandler(cfg.Environment),
		Auth:     authhandler.NewAuthHandler(authUC, log),
		Profiles: profilehandler.NewCreditProfileHandler(profileUC, log),
		Disputes: disputehandler.NewDisputeHandler(disputeUC, log),
		Letters:  letterhandler.NewLetterHandler(letterUC, log),
	}, router.Options{
		JWTSecret:   cfg.JWT.Secret,
		FrontendURL: cfg.FrontendURL,
		Log:         log,
	})

	go sweepSessions(ctx, sessions, log)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// sweepSessions removes expired refresh sessions until ctx ends.
func sweepSessions(ctx context.Context, sessions authusecase.SessionRepository, log *zap.Logger) {
	t := time.NewTicker(sessionSweep)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				log.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
