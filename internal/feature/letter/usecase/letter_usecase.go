// Package usecase generates dispute letters from templates or a text provider.
package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"credit_backend/internal/feature/letter/domain/entity"
	"credit_backend/internal/shared/ratelimiter"
)

// Provider completes a prompt under a system instruction.
type Provider interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Options tunes a LetterUsecase. Zero values are usable.
type Options struct {
	// UseMock forces the template path even when a provider is configured.
	UseMock bool
	// Timeout bounds a single provider call. Zero means the caller's context only.
	Timeout time.Duration
	// Limiter caps provider calls. Nil means unlimited.
	Limiter ratelimiter.Limiter
}

type LetterUsecase struct {
	provider Provider
	opts     Options
	log      *zap.Logger
	now      func() time.Time
}

// NewLetterUsecase creates the generator. A nil provider always uses templates.
func NewLetterUsecase(provider Provider, opts Options, log *zap.Logger) *LetterUsecase {
	if provider == nil || opts.UseMock {
		log.Warn("letter provider disabled, using templates")
	}
	return &LetterUsecase{provider: provider, opts: opts, log: log, now: time.Now}
}

// Generate writes a letter for req. Provider failures fall back to the
// template and are never returned.
func (u *LetterUsecase) Generate(ctx context.Context, req entity.Request) (*entity.Letter, error) {
	if u.provider != nil && !u.opts.UseMock {
		text, err := u.complete(ctx, req)
		if err == nil {
			return u.letter(req, text), nil
		}
		u.log.Warn("letter provider failed, falling back to template",
			zap.String("reason", req.DisputeReason),
			zap.Error(err))
	}
	return u.letter(req, RenderTemplate(req, u.now())), nil
}

func (u *LetterUsecase) complete(ctx context.Context, req entity.Request) (string, error) {
	if u.opts.Limiter != nil && !u.opts.Limiter.Allow() {
		return "", ErrRateLimited
	}
	if u.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opts.Timeout)
		defer cancel()
	}

	text, err := u.provider.Complete(ctx, SystemInstruction, BuildPrompt(req))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (u *LetterUsecase) letter(req entity.Request, text string) *entity.Letter {
	return &entity.Letter{
		Letter:               text,
		GeneratedAt:          u.now(),
		DisputeReason:        req.DisputeReason,
		EstimatedReadingTime: ReadingTime(text),
	}
}
