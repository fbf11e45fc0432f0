package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"inkwell/internal/logger"
)

const (
	RequestIDKey        = "request_id"
	requestIDHeaderName = "X-Request-ID"
	maxRequestIDLength  = 128
)

// RequestIDFromContext returns the request id or "" when unavailable.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestID tags every request with an id, stores a request-scoped log
// entry in the context and writes one access log line per request.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		requestID := normalizeRequestID(c.GetHeader(requestIDHeaderName))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		entry := log.WithField("request_id", requestID)
		c.Set(RequestIDKey, requestID)
		c.Set(logger.ContextKey, entry)
		c.Writer.Header().Set(requestIDHeaderName, requestID)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": float64(time.Since(startedAt).Microseconds()) / 1000.0,
			"client_ip":  c.ClientIP(),
		}
		if id, ok := CurrentUserID(c); ok {
			fields["user_id"] = id
		}
		entry.WithFields(fields).Info("request")
	}
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if len(candidate) > maxRequestIDLength {
		candidate = candidate[:maxRequestIDLength]
	}
	return candidate
}
