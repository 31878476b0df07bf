package logisticsserver

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

// DefaultRateLimitPerMinute applies when RATE_LIMIT_PER_MINUTE is unset.
const DefaultRateLimitPerMinute = 30

// Limiter counts requests per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

type rateLimitGuard struct {
	limiter Limiter
	limit   int64
	window  time.Duration
	logger  *slog.Logger
}

func newRateLimitGuard(l Limiter, limit int64, window time.Duration, logger *slog.Logger) *rateLimitGuard {
	return &rateLimitGuard{limiter: l, limit: limit, window: window, logger: logger}
}

// Handle rejects callers over budget with 429. Limiter failures let the
// request through.
func (g *rateLimitGuard) Handle(c *gin.Context) {
	if g.limiter == nil {
		c.Next()
		return
	}
	key := c.FullPath() + ":" + c.ClientIP()
	allowed, count, err := g.limiter.Allow(c.Request.Context(), key, g.limit, g.window)
	if err != nil {
		g.logger.WarnContext(c.Request.Context(), "rate limiter unavailable, allowing request",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.Next()
		return
	}
	remaining := g.limit - count
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.FormatInt(g.limit, 10))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(g.window.Seconds())))
		apierrors.Respond(c, apierrors.ErrTooManyRequests)
		return
	}
	c.Next()
}
