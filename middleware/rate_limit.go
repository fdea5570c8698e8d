package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"usermgmt/internal/metrics"
)

var rlCtx = context.Background()

// AuthRateWindow is the fixed window over which authentication-bearing
// requests are counted.
const AuthRateWindow = time.Minute

// RateLimiter limits requests per client IP using Redis fixed-window
// counters. Applied to the credential-bearing endpoints so password
// guessing through Basic auth stays expensive.
func RateLimiter(rdb *redis.Client, name string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("um:rl:%s:%s", name, ip)

		count, err := rdb.Incr(rlCtx, key).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"result": "error", "message": "rate limiter failed"})
			return
		}
		if count == 1 {
			_ = rdb.Expire(rlCtx, key, window).Err()
		}
		if count > limit {
			metrics.IncRateLimit(name)
			c.Header("Retry-After", fmt.Sprintf("%.f", window.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"result": "error", "message": "too many requests"})
			return
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-count))
		c.Next()
	}
}
