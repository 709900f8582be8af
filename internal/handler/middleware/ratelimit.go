package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"leisure-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window counter per client IP and route. It is
// fail-open: if redis is down or not configured, requests pass through, since
// the booking core must not depend on the cache being up.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, cfg config.RedisConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  cfg.RateLimitRequests,
		window: cfg.RateLimitWindow,
	}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.client == nil || r.limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := r.client.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			r.client.Expire(ctx, key, r.window)
		}

		if count > int64(r.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(r.window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, slow down",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
