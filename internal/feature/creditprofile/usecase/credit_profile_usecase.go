package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/shared/apperror"
	"credit_backend/internal/shared/identity"
)

// ProfileRepository persists credit profiles.
type ProfileRepository interface {
	// FindByUserID returns ErrProfileNotFound if the user has no profile.
	FindByUserID(ctx context.Context, userID string) (*entity.CreditProfile, error)
	Create(ctx context.Context, profile *entity.CreditProfile) error
	DeleteByUserID(ctx context.Context, userID string) error
	// ListAll returns every profile with its owner, newest first.
	ListAll(ctx context.Context) ([]*entity.CreditProfile, error)
}

// IdentityResolver looks up users. Unknown ids yield identity.ErrUnknownUser.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (identity.Identity, error)
}

type creditProfileUsecase struct {
	profiles ProfileRepository
	users    IdentityResolver
	rnd      RandomSource
	log      *zap.Logger
	now      func() time.Time
}

// NewCreditProfileUsecase creates the usecase. A nil rnd uses the
// package-level math/rand source, which is safe for concurrent requests.
func NewCreditProfileUsecase(profiles ProfileRepository, users IdentityResolver, rnd RandomSource, log *zap.Logger) *creditProfileUsecase {
	if rnd == nil {
		rnd = globalSource{}
	}
	return &creditProfileUsecase{
		profiles: profiles,
		users:    users,
		rnd:      rnd,
		log:      log,
		now:      time.Now,
	}
}

// GetOrCreate returns the user's profile, synthesizing one on first access.
func (u *creditProfileUsecase) GetOrCreate(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	if err := u.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("find credit profile: %w", err)
	}

	return u.generate(ctx, userID)
}

// Refresh discards the user's profile and synthesizes a new one.
func (u *creditProfileUsecase) Refresh(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	if err := u.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := u.profiles.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete credit profile: %w", err)
	}

	profile, err := u.generate(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.log.Info("credit profile refreshed", zap.String("user_id", userID), zap.Int("score", profile.CreditScore))
	return profile, nil
}

// ListAll returns every stored profile, newest first.
func (u *creditProfileUsecase) ListAll(ctx context.Context) ([]*entity.CreditProfile, error) {
	profiles, err := u.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credit profiles: %w", err)
	}
	return profiles, nil
}

func (u *creditProfileUsecase) generate(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	profile := Synthesize(userID, u.now(), u.rnd)
	err := u.profiles.Create(ctx, profile)
	if errors.Is(err, ErrProfileExists) {
		// a concurrent request stored one first
		stored, findErr := u.profiles.FindByUserID(ctx, userID)
		if findErr != nil {
			return nil, fmt.Errorf("find credit profile: %w", findErr)
		}
		return stored, nil
	}
	if err != nil {
		return nil, fmt.Errorf("save credit profile: %w", err)
	}
	return profile, nil
}

func (u *creditProfileUsecase) requireUser(ctx context.Context, userID string) error {
	if _, err := u.users.ResolveIdentity(ctx, userID); err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			return apperror.NotFound("user")
		}
		return fmt.Errorf("resolve user: %w", err)
	}
	return nil
}
