package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestIDMiddleware tags each request with a uuid, echoed back in the
// X-Request-ID header and available to handlers for log correlation
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the request id assigned by RequestIDMiddleware, or ""
// when the middleware is not installed
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
