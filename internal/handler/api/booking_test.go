//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/handler/api"
	reqdto "clinic-booking-api/internal/handler/dto/request"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubBookingUseCase answers every operation with canned values.
type stubBookingUseCase struct {
	view    *queries.BookingView
	check   *queries.BookingCheckView
	list    []*queries.BookingView
	total   int64
	history []*queries.BookingHistoryItem
	err     error
}

func (s *stubBookingUseCase) CreateBooking(context.Context, reqdto.CreateBookingRequest) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingUseCase) GetBooking(context.Context, string) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingUseCase) CheckBooking(context.Context, string) (*queries.BookingCheckView, error) {
	return s.check, s.err
}

func (s *stubBookingUseCase) ListBookings(context.Context, queries.BookingListFilter) ([]*queries.BookingView, int64, error) {
	return s.list, s.total, s.err
}

func (s *stubBookingUseCase) BookingHistory(context.Context, string) ([]*queries.BookingHistoryItem, error) {
	return s.history, s.err
}

func (s *stubBookingUseCase) UpdateBookingStatus(context.Context, string, string) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingUseCase) RescheduleBooking(context.Context, string, string, string, string) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingUseCase) DeleteBooking(context.Context, string) error {
	return s.err
}

func newBookingEngine(stub *stubBookingUseCase) *gin.Engine {
	h := api.NewBookingHandler(stub)

	engine := gin.New()
	engine.POST("/api/bookings", h.Create)
	engine.GET("/api/bookings", h.List)
	engine.GET("/api/bookings/history/:phone", h.History)
	engine.GET("/api/bookings/check/:id", h.Check)
	engine.GET("/api/bookings/:id", h.Get)
	engine.PUT("/api/bookings/:id/status", h.UpdateStatus)
	engine.PUT("/api/bookings/:id/reschedule", h.Reschedule)
	engine.DELETE("/api/bookings/:id", h.Delete)
	return engine
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

const validBookingBody = `{
	"patient_name": "Budi Santoso",
	"patient_phone": "081234567890",
	"patient_address": "Jl. Merdeka 1",
	"appointment_date": "2026-03-11",
	"appointment_time": "09:30",
	"selected_services": [{"id": "6f1f6f6a-4f4e-4a5e-9f1a-2f3b4c5d6e7f", "name": "Konsultasi", "price": "Rp 50.000"}]
}`

func TestBookingCreate(t *testing.T) {
	stub := &stubBookingUseCase{view: &queries.BookingView{ID: "BK1", Status: "pending"}}
	engine := newBookingEngine(stub)

	rec := doJSON(engine, http.MethodPost, "/api/bookings", validBookingBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope resdto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Booking berhasil dibuat.", envelope.Message)
}

func TestBookingCreateMissingFields(t *testing.T) {
	engine := newBookingEngine(&stubBookingUseCase{})

	rec := doJSON(engine, http.MethodPost, "/api/bookings", `{"patient_name": "Budi Santoso"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Data booking tidak lengkap")
}

func TestBookingCreateErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"duplicate", errs.ErrDuplicateBooking, http.StatusConflict, "DUPLICATE_BOOKING"},
		{"validation", errs.ErrDomainValidation, http.StatusBadRequest, "Data permintaan tidak valid"},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, "Terjadi kesalahan"},
		// Marked causes must classify like the bare sentinels.
		{
			"marked duplicate",
			errs.Mark(errors.New("duplicate key value violates unique constraint"), errs.ErrDuplicateBooking),
			http.StatusConflict, "DUPLICATE_BOOKING",
		},
		{
			"marked validation",
			errs.Mark(booking.ErrInvalidPhone, errs.ErrDomainValidation),
			http.StatusBadRequest, "Format nomor telepon tidak valid",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newBookingEngine(&stubBookingUseCase{err: tc.err})
			rec := doJSON(engine, http.MethodPost, "/api/bookings", validBookingBody)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestBookingList(t *testing.T) {
	stub := &stubBookingUseCase{
		list:  []*queries.BookingView{{ID: "BK1"}, {ID: "BK2"}},
		total: 120,
	}
	engine := newBookingEngine(stub)

	rec := doJSON(engine, http.MethodGet, "/api/bookings?limit=2&offset=0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope resdto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, int64(120), envelope.Pagination.Total)
	assert.True(t, envelope.Pagination.HasMore)
}

func TestBookingListRejectsBadFilters(t *testing.T) {
	engine := newBookingEngine(&stubBookingUseCase{})

	rec := doJSON(engine, http.MethodGet, "/api/bookings?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Status filter tidak valid")

	rec = doJSON(engine, http.MethodGet, "/api/bookings?date=11-03-2026", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Format tanggal tidak valid")
}

func TestBookingCheck(t *testing.T) {
	stub := &stubBookingUseCase{check: &queries.BookingCheckView{ID: "BK1", Status: "pending"}}
	engine := newBookingEngine(stub)

	// The opaque booking id is the only key the public lookup needs.
	rec := doJSON(engine, http.MethodGet, "/api/bookings/check/BK1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BK1")
}

func TestBookingCheckNotFound(t *testing.T) {
	engine := newBookingEngine(&stubBookingUseCase{err: errs.ErrBookingNotFound})

	rec := doJSON(engine, http.MethodGet, "/api/bookings/check/BK404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking tidak ditemukan")
}

func TestBookingHistory(t *testing.T) {
	stub := &stubBookingUseCase{history: []*queries.BookingHistoryItem{{ID: "BK1"}}}
	engine := newBookingEngine(stub)

	rec := doJSON(engine, http.MethodGet, "/api/bookings/history/081234567890", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BK1")
}

func TestBookingUpdateStatus(t *testing.T) {
	stub := &stubBookingUseCase{view: &queries.BookingView{ID: "BK1", Status: "confirmed"}}
	engine := newBookingEngine(stub)

	rec := doJSON(engine, http.MethodPut, "/api/bookings/BK1/status", `{"status": "confirmed"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookingUpdateStatusIllegalTransition(t *testing.T) {
	engine := newBookingEngine(&stubBookingUseCase{err: errs.ErrIllegalStatusChange})

	rec := doJSON(engine, http.MethodPut, "/api/bookings/BK1/status", `{"status": "completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Perubahan status tidak diizinkan")
}

func TestBookingRescheduleAccessDenied(t *testing.T) {
	engine := newBookingEngine(&stubBookingUseCase{err: errs.ErrBookingAccessDenied})

	rec := doJSON(engine, http.MethodPut, "/api/bookings/BK1/reschedule",
		`{"patient_phone": "089999999999", "appointment_date": "2026-03-12", "appointment_time": "10:00"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nomor telepon tidak cocok")
}

func TestBookingNotFound(t *testing.T) {
	engine := newBookingEngine(&stubBookingUseCase{err: errs.ErrBookingNotFound})

	rec := doJSON(engine, http.MethodGet, "/api/bookings/BK404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking tidak ditemukan")
}
