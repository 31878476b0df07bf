package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed window counter stored in Redis.
type RateLimiter struct {
	c      *redis.Client
	prefix string
	now    func() time.Time
}

// NewRateLimiter connects to the Redis server at addr.
func NewRateLimiter(addr string) *RateLimiter {
	return NewRateLimiterWithClient(redis.NewClient(&redis.Options{Addr: addr}))
}

// NewRateLimiterWithClient reuses an existing client.
func NewRateLimiterWithClient(c *redis.Client) *RateLimiter {
	return &RateLimiter{c: c, prefix: "rl:", now: time.Now}
}

// Allow increments the counter of the current window for key and reports
// whether the request fits in limit. The second value is the current count.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	if window <= 0 {
		window = time.Minute
	}
	bucket := rl.now().UnixNano() / int64(window)
	windowKey := rl.prefix + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, errors.Wrap(err, "redis ratelimit")
	}
	n := incr.Val()
	return n <= limit, n, nil
}

// Ping checks connectivity.
func (rl *RateLimiter) Ping(ctx context.Context) error {
	return errors.Wrap(rl.c.Ping(ctx).Err(), "redis ping")
}

// Close releases the underlying client.
func (rl *RateLimiter) Close() error {
	return rl.c.Close()
}
