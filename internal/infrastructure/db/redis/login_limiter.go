package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter counts failed logins per key in fixed windows. The first
// failure starts the window; the counter expires with it.
// Key format: login:fail:<key>
type LoginLimiter struct {
	client      redis.UniversalClient
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter creates a limiter. Non-positive arguments fall back to 5
// attempts per 15 minutes.
func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow reports whether another attempt is permitted. When locked out it
// returns the remaining window as the retry delay.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := failKey(key)

	n, err := l.client.Get(ctx, k).Int64()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return true, 0, fmt.Errorf("login limiter: get: %w", err)
	}
	if n < l.maxAttempts {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return false, l.window, fmt.Errorf("login limiter: ttl: %w", err)
	}
	if ttl <= 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

// RecordFailure increments the counter. The window starts on the first
// failure and restarts when the lockout threshold is reached, so a locked
// out key waits the full window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	k := failKey(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("login limiter: record: %w", err)
	}
	if n == 1 || n == l.maxAttempts {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("login limiter: expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, failKey(key)).Err(); err != nil {
		return fmt.Errorf("login limiter: reset: %w", err)
	}
	return nil
}

func failKey(key string) string {
	return "login:fail:" + key
}
