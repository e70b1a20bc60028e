package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UserBasedMiddleware limits requests per authenticated user, falling back
// to the client IP for anonymous callers.
func UserBasedMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}

		if !limiter.Allow(key) {
			resetTime := limiter.GetResetTime(key)

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Rate limit exceeded. Try again later.",
				"reset_time": resetTime.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.GetRemaining(key)))
		c.Next()
	}
}
