package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/epeers/fundboard/internal/models"
)

// RateLimit rejects requests beyond perMinute per process with 429. The
// bucket holds perMinute tokens so a burst up to that size is accepted.
func RateLimit(perMinute int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			log.Warnf("rate limit exceeded for %s %s", c.Request.Method, c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limited",
				Message: "too many uploads, try again later",
			})
			return
		}
		c.Next()
	}
}

// MaxBodySize caps the request body at limit bytes. Reading past it fails
// with *http.MaxBytesError.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:   "too_large",
				Message: "request body exceeds the upload limit",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
