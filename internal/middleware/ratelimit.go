package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vidbrief/backend/pkg/render"
)

// GlobalRateLimit applies one token bucket to the whole surface. Individual
// expensive endpoints layer a stricter per-caller limit on top.
func GlobalRateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			render.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Counter increments a key within a fixed window and reports the new count.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements Counter with INCR plus a first-hit EXPIRE, so the
// limit holds across replicas sharing one Redis.
type RedisCounter struct {
	Client *redis.Client
}

func (r RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.Client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// PerCallerRateLimit limits each client IP to `limit` requests per window on
// the route it wraps. A counter failure lets the request through; rate
// limiting degrades open, it does not take the endpoint down.
func PerCallerRateLimit(counter Counter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		n, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("rate limit counter failed", zap.Error(err))
			c.Next()
			return
		}
		if n > int64(limit) {
			logger.Info("rate limited",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.FullPath()),
				zap.Int64("count", n),
			)
			render.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
