package httperr

import (
	"github.com/gin-gonic/gin"
)

// Machine-readable codes the clients branch on.
const (
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeTokenInvalid     = "TOKEN_INVALID"
	CodeDuplicateBooking = "DUPLICATE_BOOKING"
	CodeRateLimited      = "RATE_LIMITED"
)

type Response struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  any    `json:"detail,omitempty"`
}

// AbortWithError preserves the original error on the gin context for the
// logging and error middleware, then answers with the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, code string) {
	abort(c, Response{Status: status, Message: msg, Code: code}, err)
}

func AbortWithDetail(c *gin.Context, status int, err error, msg string, code string, detail any) {
	abort(c, Response{Status: status, Message: msg, Code: code, Detail: detail}, err)
}

func abort(c *gin.Context, resp Response, err error) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
	c.AbortWithStatusJSON(resp.Status, resp)
}
