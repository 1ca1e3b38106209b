package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"docstore-backend/internal/shared/server/respond"
	"docstore-backend/internal/shared/telemetry"
)

// Recovery recovers from panics and returns a standardized error response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				reqID := RequestIDFromContext(c)
				telemetry.Error("panic", map[string]any{
					"request_id": reqID,
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				for k, v := range respond.CORSHeaders() {
					c.Writer.Header().Set(k, v)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, respond.ErrorResponse{
					Error: respond.ErrorBody{Code: "internal_error", Message: "Unexpected server error"},
				})
			}
		}()
		c.Next()
	}
}
