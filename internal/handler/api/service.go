package api

import (
	"net/http"

	reqdto "clinic-booking-api/internal/handler/dto/request"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServiceHandler struct {
	serviceUseCase usecase.ServiceUseCase
}

func NewServiceHandler(serviceUseCase usecase.ServiceUseCase) *ServiceHandler {
	return &ServiceHandler{
		serviceUseCase: serviceUseCase,
	}
}

func (h *ServiceHandler) Catalog(c *gin.Context) {
	catalog, err := h.serviceUseCase.GetCatalog(c.Request.Context())
	if err != nil {
		abortServiceError(c, err)
		return
	}

	resdto.OK(c, "Daftar layanan berhasil dimuat.", catalog)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.serviceUseCase.GetService(c.Request.Context(), id)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	resdto.OK(c, "Layanan ditemukan.", view)
}

func (h *ServiceHandler) ByCategory(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "categoryId")
	if !ok {
		return
	}

	views, err := h.serviceUseCase.GetServicesByCategory(c.Request.Context(), categoryID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	resdto.OK(c, "Daftar layanan berhasil dimuat.", views)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Data layanan tidak lengkap.", "", []string{"name", "base_price", "category_id"})
		return
	}

	view, err := h.serviceUseCase.CreateService(c.Request.Context(), req)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	resdto.Created(c, "Layanan berhasil dibuat.", view)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Data layanan tidak valid.", "")
		return
	}

	view, err := h.serviceUseCase.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	resdto.OK(c, "Layanan berhasil diperbarui.", view)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.serviceUseCase.DeleteService(c.Request.Context(), id); err != nil {
		abortServiceError(c, err)
		return
	}

	resdto.OK(c, "Layanan berhasil dihapus.", nil)
}

func abortServiceError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Layanan tidak ditemukan.", "")
	case errs.Is(err, errs.ErrCategoryNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Kategori layanan tidak ditemukan.", "")
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Data layanan tidak valid.", "")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Terjadi kesalahan pada server.", "")
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "ID tidak valid.", "")
		return uuid.Nil, false
	}
	return id, true
}
