package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per client IP using a fixed window:
// INCR on a per-IP key, EXPIRE on the first attempt of the window. Shared
// across instances, unlike the in-memory HTTP rate limiter.
type LoginLimiter struct {
	rdb         *goredis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window per IP.
// A nil client disables limiting (development without Redis).
func NewLoginLimiter(rdb *goredis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt for ip and reports whether it is within the
// limit. Redis errors fail open: an unreachable limiter must not lock every
// user out.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	if l.rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("login_attempts:%s", ip)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("login limiter unavailable: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return true, fmt.Errorf("login limiter expire failed: %w", err)
		}
	}

	return count <= int64(l.maxAttempts), nil
}

// Reset clears the attempt counter for ip, called after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, ip string) error {
	if l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, fmt.Sprintf("login_attempts:%s", ip)).Err()
}
