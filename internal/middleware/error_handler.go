package middleware

import (
	"spacia-portal/internal/errors"
	"spacia-portal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors and returns standardized responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			appErr := errors.MapError(err)

			logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, client_ip=%s, kind=%s, error=%s",
				c.Request.URL.Path,
				c.Request.Method,
				c.ClientIP(),
				appErr.Kind,
				appErr.TechnicalMessage)

			c.JSON(appErr.HTTPStatus, gin.H{"error": ErrorBody(appErr)})
		}
	}
}

// ErrorBody is the JSON shape of an error banner.
func ErrorBody(appErr *errors.AppError) gin.H {
	body := gin.H{
		"message": appErr.UserMessage,
		"code":    appErr.Code,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	if appErr.PropertyID != "" {
		body["propertyId"] = appErr.PropertyID
	}
	return body
}
