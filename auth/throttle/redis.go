package throttle

import (
	"context"

	"github.com/kbukum/ledger/redis"
)

const keyPrefix = "login:"

// RedisLimiter counts attempts in Redis with a fixed window per key, so the
// limit holds across instances.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter on client.
func NewRedisLimiter(client *redis.Client, cfg Config) *RedisLimiter {
	cfg.ApplyDefaults()
	return &RedisLimiter{client: client, cfg: cfg}
}

// Allow increments the window counter for key and reports whether it is
// still within MaxAttempts.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.IncrWindow(ctx, keyPrefix+key, l.cfg.Window)
	if err != nil {
		return false, err
	}
	return n <= int64(l.cfg.MaxAttempts), nil
}

// Reset deletes the counter for key.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, keyPrefix+key)
}
