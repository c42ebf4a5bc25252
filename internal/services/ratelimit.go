package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter kept in Redis, shared by every
// server instance that points at the same Redis.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

type RateDecision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

func (r *RateLimiter) Allow(ctx context.Context, key string) (RateDecision, error) {
	redisKey := "ratelimit:" + r.prefix + ":" + key

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return RateDecision{Allowed: true}, err
	}
	resetIn, err := r.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return RateDecision{Allowed: true}, err
	}
	// A counter without a TTL would never reset.
	if count == 1 || resetIn < 0 {
		if err := r.client.PExpire(ctx, redisKey, r.window).Err(); err != nil {
			return RateDecision{Allowed: true}, err
		}
		resetIn = r.window
	}

	remaining := r.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return RateDecision{Allowed: int(count) <= r.limit, Remaining: remaining, ResetIn: resetIn}, nil
}

func (r *RateLimiter) Limit() int {
	return r.limit
}
