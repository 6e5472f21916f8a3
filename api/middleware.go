package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Context keys set by RequestContext.
const (
	ctxKeyNow        = "request_now"
	ctxKeyRequestID  = "request_id"
	ctxKeyUserID     = "user_id"
	ctxKeyPrivileged = "privileged"
)

// Caller identity comes from headers the upstream gateway is trusted
// to set: X-User-ID carries the numeric user id, X-Admin marks
// privileged callers. There is no identity-provider integration here.
const (
	headerUserID    = "X-User-ID"
	headerAdmin     = "X-Admin"
	headerRequestID = "X-Request-ID"
)

// RequestContext stamps every request with a request id and a single
// UTC "now", and parses the trusted identity headers. Visibility
// decisions downstream all use this one instant.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)

		c.Set(ctxKeyNow, time.Now().UTC())
		c.Set(ctxKeyPrivileged, c.GetHeader(headerAdmin) == "true")

		if raw := c.GetHeader(headerUserID); raw != "" {
			if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
				c.Set(ctxKeyUserID, userID)
			}
		}

		c.Next()
	}
}

// requestNow returns the instant stamped by RequestContext.
func requestNow(c *gin.Context) time.Time {
	if v, ok := c.Get(ctxKeyNow); ok {
		if now, ok := v.(time.Time); ok {
			return now
		}
	}
	return time.Now().UTC()
}

func isPrivileged(c *gin.Context) bool {
	return c.GetBool(ctxKeyPrivileged)
}

// callerUserID returns the trusted user id, if one was supplied.
func callerUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}

// RequireAdmin guards the management endpoints.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivileged(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "admin privileges required"})
			return
		}
		c.Next()
	}
}

// RateLimit applies a process-wide token bucket to a route group.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
