//go:build unit

package booking_test

import (
	"testing"

	"clinic-booking-api/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBooking(t *testing.T, services []booking.SelectedService) (*booking.Booking, error) {
	t.Helper()

	name, err := booking.NewPatientName("Budi Santoso")
	require.NoError(t, err)
	phone, err := booking.NewPhone("081234567890")
	require.NoError(t, err)
	date, err := booking.NewAppointmentDate("2026-03-11", fixedNow)
	require.NoError(t, err)
	timeOfDay, err := booking.NewAppointmentTime("09:30")
	require.NoError(t, err)

	return booking.NewBooking(fixedNow, name, phone, "Jl. Merdeka 1", "", date, timeOfDay, services)
}

func TestNewBooking(t *testing.T) {
	services := []booking.SelectedService{
		{ID: uuid.New(), Name: "Pembersihan Karang Gigi", Price: "Rp 150.000"},
		{ID: uuid.New(), Name: "Konsultasi", Price: "Rp 50.000"},
	}

	b, err := buildBooking(t, services)
	require.NoError(t, err)

	assert.Equal(t, booking.StatusPending, b.Status())
	assert.Equal(t, int64(200000), b.TotalPrice())
	assert.Len(t, b.LineItems(), 2)
	assert.Equal(t, int64(150000), b.LineItems()[0].PriceNumeric())
	assert.True(t, len(b.ID()) > 2)

	// Empty notes fall back to the default.
	assert.Equal(t, "Tidak ada catatan", b.PatientNotes())
}

func TestNewBookingRejectsEmptyServices(t *testing.T) {
	_, err := buildBooking(t, nil)
	assert.ErrorIs(t, err, booking.ErrNoLineItems)
}

func TestNewBookingRejectsIncompleteService(t *testing.T) {
	cases := []booking.SelectedService{
		{ID: uuid.Nil, Name: "Konsultasi", Price: "Rp 50.000"},
		{ID: uuid.New(), Name: "", Price: "Rp 50.000"},
		{ID: uuid.New(), Name: "Konsultasi", Price: ""},
	}

	for _, svc := range cases {
		_, err := buildBooking(t, []booking.SelectedService{svc})
		assert.ErrorIs(t, err, booking.ErrEmptyService)
	}
}

func TestRegenerateID(t *testing.T) {
	b, err := buildBooking(t, []booking.SelectedService{
		{ID: uuid.New(), Name: "Konsultasi", Price: "Rp 50.000"},
	})
	require.NoError(t, err)

	first := b.ID()
	b.RegenerateID(fixedNow)
	assert.NotEqual(t, first, b.ID())
}
