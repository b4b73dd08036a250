package ratelimit

import (
	"context"

	"github.com/merchhaus/backoffice/internal/config"
	redis "github.com/redis/go-redis/v9"
)

// OrderSubmitLimiter throttles pending-order creation per user.
type OrderSubmitLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewOrderSubmitLimiter(client *redis.Client, cfg config.Config) *OrderSubmitLimiter {
	return &OrderSubmitLimiter{
		bucket: NewTokenBucket(client),
		rate:   cfg.OrderSubmitRate,
		burst:  cfg.OrderSubmitBurst,
	}
}

func (l *OrderSubmitLimiter) Allow(ctx context.Context, userID string) (*Result, error) {
	return l.bucket.Allow(ctx, "ratelimit:order-submit:"+userID, l.rate, l.burst)
}
