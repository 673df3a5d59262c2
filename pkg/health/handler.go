package health

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is suggested to clients while a required dependency is down.
const retryAfterSeconds = 10

// LivenessHandler answers 200 while the process runs, with its uptime.
func LivenessHandler(startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, gin.H{
			"status":         StatusUp,
			"uptime_seconds": int64(time.Since(startedAt) / time.Second),
		})
	}
}

// ReadinessHandler answers 503 with Retry-After when a required dependency
// is down and 200 otherwise. A degraded step sink does not fail readiness.
func ReadinessHandler(registry *Registry, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		response := registry.CheckAll(ctx)

		c.Header("Cache-Control", "no-store")
		if response.Status == StatusDown {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		c.JSON(http.StatusOK, response)
	}
}
