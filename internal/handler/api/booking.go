package api

import (
	"net/http"
	"strconv"
	"time"

	"clinic-booking-api/internal/domain/booking"
	reqdto "clinic-booking-api/internal/handler/dto/request"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Data booking tidak lengkap.", "",
			[]string{"patient_name", "patient_phone", "patient_address", "appointment_date", "appointment_time", "selected_services"})
		return
	}

	view, err := h.bookingUseCase.CreateBooking(c.Request.Context(), req)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.Created(c, "Booking berhasil dibuat.", view)
}

func (h *BookingHandler) List(c *gin.Context) {
	filter := queries.BookingListFilter{
		Status:    c.Query("status"),
		Date:      c.Query("date"),
		Limit:     int32(queryInt(c, "limit", 0)),
		Offset:    int32(queryInt(c, "offset", 0)),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if filter.Status != "" {
		if _, err := booking.NewStatus(filter.Status); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Status filter tidak valid.", "")
			return
		}
	}
	if filter.Date != "" {
		if _, err := time.Parse(booking.DateLayout, filter.Date); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Format tanggal tidak valid.", "")
			return
		}
	}

	views, total, err := h.bookingUseCase.ListBookings(c.Request.Context(), filter)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	resdto.Paginated(c, "Daftar booking berhasil dimuat.", views, resdto.NewPagination(total, limit, max(filter.Offset, 0)))
}

func (h *BookingHandler) Get(c *gin.Context) {
	view, err := h.bookingUseCase.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.OK(c, "Booking ditemukan.", view)
}

// Check is the public status lookup; the opaque booking id doubles as the
// access key.
func (h *BookingHandler) Check(c *gin.Context) {
	view, err := h.bookingUseCase.CheckBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.OK(c, "Booking ditemukan.", view)
}

func (h *BookingHandler) History(c *gin.Context) {
	items, err := h.bookingUseCase.BookingHistory(c.Request.Context(), c.Param("phone"))
	if err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.OK(c, "Riwayat booking berhasil dimuat.", items)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Status wajib diisi.", "", []string{"status"})
		return
	}

	view, err := h.bookingUseCase.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.OK(c, "Status booking berhasil diperbarui.", view)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetail(c, http.StatusBadRequest, err,
			"Data penjadwalan ulang tidak lengkap.", "",
			[]string{"patient_phone", "appointment_date", "appointment_time"})
		return
	}

	view, err := h.bookingUseCase.RescheduleBooking(c.Request.Context(), c.Param("id"),
		req.PatientPhone, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.OK(c, "Booking berhasil dijadwalkan ulang.", view)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingUseCase.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		abortBookingError(c, err)
		return
	}

	resdto.OK(c, "Booking berhasil dihapus.", nil)
}

func abortBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, validationMessage(err), "")
	case errs.Is(err, errs.ErrDuplicateBooking):
		httperr.AbortWithError(c, http.StatusConflict, err,
			"Anda sudah memiliki booking pada tanggal tersebut.", httperr.CodeDuplicateBooking)
	case errs.Is(err, errs.ErrIllegalStatusChange):
		httperr.AbortWithError(c, http.StatusConflict, err, "Perubahan status tidak diizinkan.", "")
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking tidak ditemukan.", "")
	case errs.Is(err, errs.ErrBookingAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err,
			"Nomor telepon tidak cocok dengan booking ini.", "")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Terjadi kesalahan pada server.", "")
	}
}

func validationMessage(err error) string {
	switch {
	case errs.Is(err, booking.ErrInvalidPhone):
		return "Format nomor telepon tidak valid."
	case errs.Is(err, booking.ErrInvalidDate), errs.Is(err, booking.ErrDateOutOfRange):
		return "Tanggal janji temu tidak valid."
	case errs.Is(err, booking.ErrInvalidTime):
		return "Format waktu tidak valid."
	case errs.Is(err, booking.ErrInvalidName):
		return "Nama pasien harus terdiri dari minimal dua kata."
	case errs.Is(err, booking.ErrNoLineItems), errs.Is(err, booking.ErrEmptyService),
		errs.Is(err, errs.ErrInvalidBookingService):
		return "Layanan yang dipilih tidak valid."
	case errs.Is(err, booking.ErrInvalidStatus):
		return "Status booking tidak valid."
	default:
		return "Data permintaan tidak valid."
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
