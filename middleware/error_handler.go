package middleware

import (
	"TravelMate/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware renders the last error attached to the context
func ErrorHandlerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var customErr *utils.CustomError
		if errors.As(err, &customErr) {
			if customErr.StatusCode >= http.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(customErr.Unwrap()))
			}
			utils.ErrorResponse(c, customErr.StatusCode, customErr.Message)
			return
		}

		logger.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
