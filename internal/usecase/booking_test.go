//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/domain/notification"
	reqdto "clinic-booking-api/internal/handler/dto/request"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo serves the read-side lookups that run before any
// transaction is opened. Write methods are never reached in these tests.
type fakeBookingRepo struct {
	view       *queries.BookingView
	snap       *queries.BookingSnapshot
	history    []*queries.BookingHistoryItem
	list       []*queries.BookingView
	total      int64
	err        error
	gotFilter  queries.BookingListFilter
	gotLimit   int32
	deletedIDs []string
}

func (f *fakeBookingRepo) Create(context.Context, db.DBTX, *booking.Booking) error {
	panic("unexpected Create call")
}

func (f *fakeBookingRepo) FindByID(context.Context, string) (*queries.BookingView, error) {
	return f.view, f.err
}

func (f *fakeBookingRepo) FindByIDTx(context.Context, db.DBTX, string) (*queries.BookingView, error) {
	return f.view, f.err
}

func (f *fakeBookingRepo) Snapshot(context.Context, string) (*queries.BookingSnapshot, error) {
	return f.snap, f.err
}

func (f *fakeBookingRepo) List(_ context.Context, filter queries.BookingListFilter) ([]*queries.BookingView, int64, error) {
	f.gotFilter = filter
	return f.list, f.total, f.err
}

func (f *fakeBookingRepo) HistoryByPhone(_ context.Context, _ string, limit int32) ([]*queries.BookingHistoryItem, error) {
	f.gotLimit = limit
	return f.history, f.err
}

func (f *fakeBookingRepo) UpdateStatus(context.Context, db.DBTX, string, booking.Status, booking.Status, time.Time) error {
	panic("unexpected UpdateStatus call")
}

func (f *fakeBookingRepo) Reschedule(context.Context, db.DBTX, string, booking.AppointmentDate, booking.AppointmentTime, time.Time) error {
	panic("unexpected Reschedule call")
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return f.err
}

type fakeNotificationWriter struct{}

func (fakeNotificationWriter) Create(context.Context, db.DBTX, *notification.Notification) error {
	return nil
}

func newBookingUseCase(repo *fakeBookingRepo) usecase.BookingUseCase {
	mock := clock.NewMockClock(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))
	return usecase.NewBookingUseCase(repo, fakeNotificationWriter{}, nil, mock)
}

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", nil, infra.KindNotFound)
}

func TestGetBookingNotFound(t *testing.T) {
	uc := newBookingUseCase(&fakeBookingRepo{err: notFoundErr()})

	_, err := uc.GetBooking(context.Background(), "BK404")
	assert.ErrorIs(t, err, errs.ErrBookingNotFound)
}

func TestCheckBooking(t *testing.T) {
	repo := &fakeBookingRepo{view: &queries.BookingView{
		ID:           "BK1",
		PatientName:  "Budi Santoso",
		PatientPhone: "081234567890",
		PatientNotes: "Tidak ada catatan",
		Status:       "pending",
	}}
	uc := newBookingUseCase(repo)

	view, err := uc.CheckBooking(context.Background(), "BK1")
	require.NoError(t, err)
	assert.Equal(t, "BK1", view.ID)
	assert.Equal(t, "pending", view.Status)
}

func TestCheckBookingNotFound(t *testing.T) {
	uc := newBookingUseCase(&fakeBookingRepo{err: notFoundErr()})

	_, err := uc.CheckBooking(context.Background(), "BK404")
	assert.ErrorIs(t, err, errs.ErrBookingNotFound)
}

func TestListBookingsClampsPaging(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newBookingUseCase(repo)

	cases := []struct {
		limit, offset      int32
		wantLimit, wantOff int32
	}{
		{0, 0, 50, 0},
		{500, -3, 100, 0},
		{25, 10, 25, 10},
	}

	for _, tc := range cases {
		_, _, err := uc.ListBookings(context.Background(), queries.BookingListFilter{Limit: tc.limit, Offset: tc.offset})
		require.NoError(t, err)
		assert.Equal(t, tc.wantLimit, repo.gotFilter.Limit, "limit %d", tc.limit)
		assert.Equal(t, tc.wantOff, repo.gotFilter.Offset, "offset %d", tc.offset)
	}
}

func TestBookingHistoryUsesFixedLimit(t *testing.T) {
	repo := &fakeBookingRepo{history: []*queries.BookingHistoryItem{{ID: "BK1"}}}
	uc := newBookingUseCase(repo)

	items, err := uc.BookingHistory(context.Background(), "0812-3456-7890")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(10), repo.gotLimit)
}

func TestUpdateBookingStatusRejectsBadInput(t *testing.T) {
	uc := newBookingUseCase(&fakeBookingRepo{snap: &queries.BookingSnapshot{ID: "BK1", Status: "pending"}})

	_, err := uc.UpdateBookingStatus(context.Background(), "BK1", "archived")
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	// pending can never jump straight to completed.
	_, err = uc.UpdateBookingStatus(context.Background(), "BK1", "completed")
	assert.ErrorIs(t, err, errs.ErrIllegalStatusChange)
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	uc := newBookingUseCase(&fakeBookingRepo{err: notFoundErr()})

	_, err := uc.UpdateBookingStatus(context.Background(), "BK404", "confirmed")
	assert.ErrorIs(t, err, errs.ErrBookingNotFound)
}

func TestRescheduleBookingGuards(t *testing.T) {
	t.Run("phone mismatch", func(t *testing.T) {
		uc := newBookingUseCase(&fakeBookingRepo{
			snap: &queries.BookingSnapshot{ID: "BK1", PatientPhone: "081234567890", Status: "pending"},
		})
		_, err := uc.RescheduleBooking(context.Background(), "BK1", "089999999999", "2026-03-12", "10:00")
		assert.ErrorIs(t, err, errs.ErrBookingAccessDenied)
	})

	t.Run("terminal status", func(t *testing.T) {
		uc := newBookingUseCase(&fakeBookingRepo{
			snap: &queries.BookingSnapshot{ID: "BK1", PatientPhone: "081234567890", Status: "completed"},
		})
		_, err := uc.RescheduleBooking(context.Background(), "BK1", "081234567890", "2026-03-12", "10:00")
		assert.ErrorIs(t, err, errs.ErrIllegalStatusChange)
	})

	t.Run("invalid date", func(t *testing.T) {
		uc := newBookingUseCase(&fakeBookingRepo{})
		_, err := uc.RescheduleBooking(context.Background(), "BK1", "081234567890", "2020-01-01", "10:00")
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}

func TestDeleteBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newBookingUseCase(repo)

	require.NoError(t, uc.DeleteBooking(context.Background(), "BK1"))
	assert.Equal(t, []string{"BK1"}, repo.deletedIDs)

	repo.err = notFoundErr()
	assert.ErrorIs(t, uc.DeleteBooking(context.Background(), "BK404"), errs.ErrBookingNotFound)
}

func createBookingRequest(phone, date string) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PatientName:     "Budi Santoso",
		PatientPhone:    phone,
		PatientAddress:  "Jl. Merdeka 1",
		AppointmentDate: date,
		AppointmentTime: "09:30",
		Services: []reqdto.SelectedServiceRequest{
			{ID: uuid.New().String(), Name: "Konsultasi", Price: "Rp 50.000"},
		},
	}
}

func TestCreateBookingValidation(t *testing.T) {
	uc := newBookingUseCase(&fakeBookingRepo{})

	_, err := uc.CreateBooking(context.Background(), createBookingRequest("081234567890", "2020-01-01"))
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	_, err = uc.CreateBooking(context.Background(), createBookingRequest("12", "2026-03-11"))
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
}
