package middleware

import (
	"log/slog"
	"net/http"

	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "Terjadi kesalahan pada server. Silakan coba lagi nanti."

// ErrorHandler renders the last public error pushed onto the context. In
// release mode the raw message never leaks: the full detail goes to the log
// and the client gets a generic envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			logContextErrors(c)
			return
		}

		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, sanitizeResponse(resp))
					return
				}
			}
		}

		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}

		resp := httperr.Response{Status: http.StatusInternalServerError, Message: genericErrorMessage}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP())

				resp := httperr.Response{Status: http.StatusInternalServerError, Message: genericErrorMessage}
				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}

func sanitizeResponse(resp httperr.Response) httperr.Response {
	if gin.Mode() == gin.ReleaseMode && resp.Status >= http.StatusInternalServerError {
		resp.Message = genericErrorMessage
		resp.Detail = nil
	}
	return resp
}

func logContextErrors(c *gin.Context) {
	for _, ginErr := range c.Errors {
		if c.Writer.Status() < http.StatusInternalServerError {
			continue
		}
		slog.Error("request failed",
			"error", ginErr.Err.Error(),
			"stack", errs.ExtractStackLines(ginErr.Err, 8),
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP())
	}
}
