// Package ratelimiter provides a fixed-window limiter for outbound calls.
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter reports whether another call is allowed in the current window.
type Limiter interface {
	Allow() bool
}

// RateLimiter caps the number of operations per interval. Unlike a blocking
// limiter it never sleeps: a call over the limit is simply refused.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // calls allowed per interval
	interval  time.Duration // window length
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing limit calls per interval.
// A non-positive limit disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Allow consumes one slot of the current window and reports whether it was available.
func (rl *RateLimiter) Allow() bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	if rl.count >= rl.limit {
		return false
	}
	rl.count++
	return true
}

