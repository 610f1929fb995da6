package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-registry/internal/domain"
	resp "person-registry/internal/transport/http/response"
)

// Recovery turns a handler panic into the UNEXPECTED_ERROR envelope.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("handler panicked",
					zap.String("rid", c.GetString(KeyRequestID)),
					zap.String("path", c.FullPath()),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				status, body := resp.FromError(domain.Unexpected(fmt.Errorf("panic: %v", rec)))
				c.AbortWithStatusJSON(status, body)
			}
		}()
		c.Next()
	}
}
