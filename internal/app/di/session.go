// Package di provides factories that pick component implementations from configuration.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "credit_backend/internal/feature/auth/adapters"
	"credit_backend/internal/feature/auth/usecase"
	"credit_backend/internal/platform/session"
)

// NewSessionRepository returns a redis-backed store when rdb is set and
// falls back to the database otherwise.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionRepository(db)
}
