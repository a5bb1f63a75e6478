package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-Id"
	loggerKey       = "logger"
	requestIDKey    = "requestID"
)

// RequestContext tags every request with an ID and a logger carrying it.
func RequestContext(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Set(requestIDKey, id)
		c.Set(loggerKey, base.With(zap.String("requestId", id)))
		c.Next()
	}
}

// RequestLogger retrieves the request-scoped logger, falling back to the
// global one.
func RequestLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(loggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
