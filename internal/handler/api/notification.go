package api

import (
	"net/http"

	reqdto "clinic-booking-api/internal/handler/dto/request"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	var req reqdto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Parameter daftar tidak valid.", "")
		return
	}

	filter, err := usecase.NewNotificationStatusFilter(req.Status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Filter status tidak valid.", "")
		return
	}

	views, err := h.notificationUseCase.ListNotifications(c.Request.Context(), c.Param("phone"), filter, req.Limit)
	if err != nil {
		abortNotificationError(c, err)
		return
	}

	resdto.OK(c, "Daftar notifikasi berhasil dimuat.", views)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationUseCase.UnreadCount(c.Request.Context(), c.Param("phone"))
	if err != nil {
		abortNotificationError(c, err)
		return
	}

	resdto.OK(c, "Jumlah notifikasi belum dibaca.", gin.H{"count": count})
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req reqdto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Data notifikasi tidak lengkap.", "", []string{"user_phone", "type", "title", "message"})
		return
	}

	if err := h.notificationUseCase.CreateNotification(c.Request.Context(), req); err != nil {
		abortNotificationError(c, err)
		return
	}

	resdto.Created(c, "Notifikasi berhasil dibuat.", nil)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.NotificationOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Nomor telepon wajib diisi.", "", []string{"phone"})
		return
	}

	if err := h.notificationUseCase.MarkRead(c.Request.Context(), id, req.Phone); err != nil {
		abortNotificationError(c, err)
		return
	}

	resdto.OK(c, "Notifikasi ditandai sudah dibaca.", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.notificationUseCase.MarkAllRead(c.Request.Context(), c.Param("phone"))
	if err != nil {
		abortNotificationError(c, err)
		return
	}

	resdto.OK(c, "Semua notifikasi ditandai sudah dibaca.", gin.H{"updated": count})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.NotificationOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Nomor telepon wajib diisi.", "", []string{"phone"})
		return
	}

	if err := h.notificationUseCase.DeleteNotification(c.Request.Context(), id, req.Phone); err != nil {
		abortNotificationError(c, err)
		return
	}

	resdto.OK(c, "Notifikasi berhasil dihapus.", nil)
}

func abortNotificationError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrNotificationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Notifikasi tidak ditemukan.", "")
	case errs.Is(err, errs.ErrNotificationAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err,
			"Nomor telepon tidak cocok dengan notifikasi ini.", "")
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Data notifikasi tidak valid.", "")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Terjadi kesalahan pada server.", "")
	}
}
