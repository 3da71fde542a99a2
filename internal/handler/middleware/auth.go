package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/pkg/cookie"
	"clinic-booking-api/internal/pkg/jwt"
	"clinic-booking-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxPrincipalKey = "principal"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth reads the Authorization header first and falls back to the
// auth cookie, so API clients can override a stale browser session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = cookie.GetAuthToken(c)
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errors.New("missing access token"),
				"Akses ditolak. Token tidak ditemukan.", "")
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed",
				"error", err.Error(),
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path)

			if errors.Is(err, jwt.ErrExpiredToken) {
				httperr.AbortWithError(c, http.StatusUnauthorized, err,
					"Token telah kedaluwarsa. Silakan login kembali.", httperr.CodeTokenExpired)
				return
			}
			httperr.AbortWithError(c, http.StatusForbidden, err,
				"Token tidak valid.", httperr.CodeTokenInvalid)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError,
				errors.New("RequireAdmin used without RequireAuth"),
				"Terjadi kesalahan pada server.", "")
			return
		}

		if !principal.Role.IsAdmin() {
			httperr.AbortWithError(c, http.StatusForbidden,
				errors.New("insufficient role"),
				"Akses ditolak. Anda tidak memiliki izin.", "")
			return
		}

		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (usecase.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return usecase.Principal{}, false
	}

	principal, ok := v.(usecase.Principal)
	return principal, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
