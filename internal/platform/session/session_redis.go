// Package session stores refresh sessions in redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"credit_backend/internal/feature/auth/domain/entity"
	"credit_backend/internal/feature/auth/usecase"
)

// revokedTTL keeps a revoked session readable so refresh-token reuse is
// reported as revoked rather than unknown.
const revokedTTL = 24 * time.Hour

// SessionRedis is a usecase.SessionRepository on redis.
//
//	<prefix>:<id>            JSON session, TTL = time left until ExpiresAt
//	<prefix>:user:<userID>   sorted set of session ids scored by CreatedAt
//
// Index entries whose session key has expired are pruned lazily on read.
type SessionRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix, now: time.Now}
}

func (r *SessionRedis) key(id string) string { return r.prefix + ":" + id }

func (r *SessionRedis) indexKey(userID string) string { return r.prefix + ":user:" + userID }

func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	idx := r.indexKey(s.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(s.ID), data, ttl)
		pipe.ZAdd(ctx, idx, redis.Z{Score: float64(s.CreatedAt.UnixNano()), Member: s.ID})
		// sessions share one lifetime, so the newest outlives the rest of the index
		pipe.Expire(ctx, idx, ttl)
		return nil
	})
	return err
}

func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

// FindByUserID returns the user's active sessions, oldest first.
func (r *SessionRedis) FindByUserID(ctx context.Context, userID string) ([]*entity.Session, error) {
	all, err := r.indexed(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := r.now()
	active := make([]*entity.Session, 0, len(all))
	for _, s := range all {
		if s.ActiveAt(now) {
			active = append(active, s)
		}
	}
	return active, nil
}

// indexed loads every session still stored for userID in index order and
// prunes ids whose key is gone.
func (r *SessionRedis) indexed(ctx context.Context, userID string) ([]*entity.Session, error) {
	idx := r.indexKey(userID)
	ids, err := r.client.ZRange(ctx, idx, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	raw, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var (
		sessions []*entity.Session
		stale    []any
	)
	for i, v := range raw {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var s entity.Session
		if err := json.Unmarshal([]byte(str), &s); err != nil {
			return nil, fmt.Errorf("unmarshal session %s: %w", ids[i], err)
		}
		sessions = append(sessions, &s)
	}
	if len(stale) > 0 {
		// best effort; a failed prune is retried on the next read
		_ = r.client.ZRem(ctx, idx, stale...).Err()
	}
	return sessions, nil
}

func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return r.revoke(ctx, s)
}

func (r *SessionRedis) revoke(ctx context.Context, s *entity.Session) error {
	if s.RevokedAt != nil {
		return nil
	}
	now := r.now()
	s.RevokedAt = &now
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, r.key(s.ID), data, revokedTTL).Err()
}

func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID string) error {
	sessions, err := r.indexed(ctx, userID)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if err := r.revoke(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// DeleteExpired is a no-op: keys expire through their TTL.
func (r *SessionRedis) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

func (r *SessionRedis) CountByUserID(ctx context.Context, userID string) (int64, error) {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// DeleteOldestByUserID removes the user's oldest active session.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID string) error {
	sessions, err := r.FindByUserID(ctx, userID)
	if err != nil || len(sessions) == 0 {
		return err
	}

	oldest := sessions[0]
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(oldest.ID))
		pipe.ZRem(ctx, r.indexKey(userID), oldest.ID)
		return nil
	})
	return err
}
