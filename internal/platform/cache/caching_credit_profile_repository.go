// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"credit_backend/internal/feature/creditprofile/domain/entity"
	"credit_backend/internal/feature/creditprofile/usecase"
)

// CachingCreditProfileRepository decorates a ProfileRepository with Redis
// cache-aside reads. Cache failures never fail the call.
type CachingCreditProfileRepository struct {
	inner     usecase.ProfileRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProfileRepository = (*CachingCreditProfileRepository)(nil)

// NewCachingCreditProfileRepository wraps inner. If ttl is 0 it defaults to
// 10 minutes; an empty namespace becomes "creditprofile". A nil rdb disables caching.
func NewCachingCreditProfileRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProfileRepository, namespace string) *CachingCreditProfileRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "creditprofile"
	}
	return &CachingCreditProfileRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingCreditProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.CreditProfile, error) {
	if c.rdb == nil {
		return c.inner.FindByUserID(ctx, userID)
	}

	key := c.userKey(userID)
	var cached entity.CreditProfile
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	// ErrProfileNotFound is not cached so the first GetOrCreate sees the new row.
	p, err := c.inner.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *CachingCreditProfileRepository) Create(ctx context.Context, profile *entity.CreditProfile) error {
	if err := c.inner.Create(ctx, profile); err != nil {
		return err
	}
	c.invalidate(ctx, profile.UserID)
	return nil
}

func (c *CachingCreditProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := c.inner.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *CachingCreditProfileRepository) ListAll(ctx context.Context) ([]*entity.CreditProfile, error) {
	if c.rdb == nil {
		return c.inner.ListAll(ctx)
	}

	key := c.allKey()
	var cached []*entity.CreditProfile
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// load reports whether key held a decodable value. Corrupted entries are dropped.
func (c *CachingCreditProfileRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *CachingCreditProfileRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

func (c *CachingCreditProfileRepository) invalidate(ctx context.Context, userID string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.userKey(userID), c.allKey()).Err()
}

func (c *CachingCreditProfileRepository) userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", c.namespace, safe(userID))
}

func (c *CachingCreditProfileRepository) allKey() string {
	return c.namespace + ":all"
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
