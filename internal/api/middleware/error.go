package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mverhoef/authgate/internal/api/dto"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware recovers from panics and collapses them to the
// opaque server-error body; detail goes to the log only.
func ErrorHandlerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.FullPath()),
				)
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Msg: "Server error"})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			logger.Error("unhandled request error",
				zap.String("error", c.Errors.Last().Error()),
				zap.String("path", c.FullPath()),
			)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Msg: "Server error"})
		}
	}
}
