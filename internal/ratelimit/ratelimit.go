package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another attempt identified by key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Unlimited allows everything.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) { return true, nil }

// FixedWindow counts attempts per key in Redis and resets the count every window.
type FixedWindow struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewFixedWindow allows limit attempts per key per window.
func NewFixedWindow(client *redis.Client, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, prefix: prefix, limit: limit, window: window}
}

func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= int64(l.limit), nil
}
