//go:build unit

package booking_test

import (
	"testing"

	"clinic-booking-api/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusPending, booking.StatusConfirmed, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusCompleted, false},
		{booking.StatusPending, booking.StatusPending, false},
		{booking.StatusConfirmed, booking.StatusCompleted, true},
		{booking.StatusConfirmed, booking.StatusCancelled, true},
		{booking.StatusConfirmed, booking.StatusPending, false},
		{booking.StatusCompleted, booking.StatusCancelled, false},
		{booking.StatusCompleted, booking.StatusPending, false},
		{booking.StatusCancelled, booking.StatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusCompleted.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
}

func TestNewStatus(t *testing.T) {
	status, err := booking.NewStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, status)

	_, err = booking.NewStatus("archived")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)

	_, err = booking.NewStatus("")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}
