package di

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"credit_backend/internal/feature/letter/adapters/gemini"
	"credit_backend/internal/feature/letter/adapters/openai"
	"credit_backend/internal/platform/config"
	"credit_backend/internal/platform/session"
)

func TestNewSessionRepository(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	t.Run("database without redis", func(t *testing.T) {
		repo := NewSessionRepository(nil, db)
		_, isRedis := repo.(*session.SessionRedis)
		assert.False(t, isRedis)
	})

	t.Run("redis when available", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		repo := NewSessionRepository(rdb, db)
		assert.IsType(t, &session.SessionRedis{}, repo)
	})
}

func TestNewLetterProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log := zap.NewNop()

	tests := []struct {
		name string
		cfg  config.AIConfig
		want any
	}{
		{"mock mode", config.AIConfig{Provider: "openai", OpenAIAPIKey: "k", UseMock: true}, nil},
		{"missing key", config.AIConfig{Provider: "openai"}, nil},
		{"openai", config.AIConfig{Provider: "openai", OpenAIAPIKey: "k"}, &openai.OpenAIProvider{}},
		{"gemini", config.AIConfig{Provider: "gemini", GeminiAPIKey: "k"}, &gemini.GeminiProvider{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLetterProvider(ctx, tt.cfg, log)
			if tt.want == nil {
				assert.Nil(t, p)
				return
			}
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestNewLetterUsecase_MockFallsBackToTemplate(t *testing.T) {
	t.Parallel()

	uc := NewLetterUsecase(context.Background(), config.AIConfig{UseMock: true, RateLimit: 5}, zap.NewNop())
	require.NotNil(t, uc)
}
