package api

import (
	"errors"
	"net/http"

	reqdto "clinic-booking-api/internal/handler/dto/request"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/handler/middleware"
	"clinic-booking-api/internal/pkg/config"
	"clinic-booking-api/internal/pkg/cookie"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/pkg/jwt"
	"clinic-booking-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	jwtService  *jwt.Service
	cookieCfg   config.CookieConfig
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, jwtService *jwt.Service, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		jwtService:  jwtService,
		cookieCfg:   cookieCfg,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Username dan password wajib diisi.", "", []string{"username", "password"})
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Username atau password tidak valid.", "")
		return
	}

	token, user, err := h.authUseCase.Login(c.Request.Context(), credentials)
	if err != nil {
		switch {
		case errs.Is(err, usecase.ErrInvalidCredentials), errs.Is(err, usecase.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Username atau password salah.", "")
		case errs.Is(err, usecase.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Akun Anda tidak aktif.", "")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Terjadi kesalahan pada server.", "")
		}
		return
	}

	cookie.SetAuthCookie(c, h.cookieCfg, token, h.jwtService.TokenDuration())

	resdto.OK(c, "Login berhasil.", resdto.LoginResponse{
		Token: token,
		User:  user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAuthCookie(c, h.cookieCfg)
	resdto.OK(c, "Logout berhasil.", nil)
}

// Verify answers with the principal resolved from the presented token; the
// auth middleware has already rejected anything invalid.
func (h *AuthHandler) Verify(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized,
			errors.New("principal missing from context"), "Akses ditolak.", "")
		return
	}

	user, err := h.authUseCase.GetCurrentUser(c.Request.Context(), principal.UserID)
	if err != nil {
		switch {
		case errs.Is(err, usecase.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Pengguna tidak ditemukan.", "")
		case errs.Is(err, usecase.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Akun Anda tidak aktif.", "")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Terjadi kesalahan pada server.", "")
		}
		return
	}

	resdto.OK(c, "Token valid.", user)
}
