package di

import (
	"context"
	"time"

	"go.uber.org/zap"

	"credit_backend/internal/feature/letter/adapters/gemini"
	"credit_backend/internal/feature/letter/adapters/openai"
	"credit_backend/internal/feature/letter/usecase"
	"credit_backend/internal/platform/config"
	infrahttp "credit_backend/internal/platform/http"
	"credit_backend/internal/shared/ratelimiter"
)

// NewLetterProvider builds the configured text provider. It returns nil when
// mock mode is on or no API key is set, so letters come from templates.
func NewLetterProvider(ctx context.Context, cfg config.AIConfig, log *zap.Logger) usecase.Provider {
	if cfg.UseMock || cfg.APIKey() == "" {
		return nil
	}

	client := infrahttp.NewHTTPClient(cfg.Timeout)
	switch cfg.Provider {
	case "gemini":
		p, err := gemini.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, client)
		if err != nil {
			log.Warn("gemini provider unavailable", zap.Error(err))
			return nil
		}
		return p
	default:
		return openai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, client)
	}
}

// NewLetterUsecase wires the provider with the configured timeout and a
// per-minute call budget.
func NewLetterUsecase(ctx context.Context, cfg config.AIConfig, log *zap.Logger) *usecase.LetterUsecase {
	opts := usecase.Options{UseMock: cfg.UseMock, Timeout: cfg.Timeout}
	if cfg.RateLimit > 0 {
		opts.Limiter = ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	}
	return usecase.NewLetterUsecase(NewLetterProvider(ctx, cfg, log), opts, log)
}
