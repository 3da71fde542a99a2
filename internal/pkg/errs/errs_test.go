//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"clinic-booking-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIsSeesThroughMarks(t *testing.T) {
	cause := errors.New(`duplicate key value violates unique constraint "bookings_phone_date_key"`)
	marked := errs.Mark(cause, errs.ErrDuplicateBooking)

	assert.True(t, errs.Is(marked, errs.ErrDuplicateBooking))
	assert.True(t, errs.Is(marked, cause))
	assert.False(t, errs.Is(marked, errs.ErrBookingNotFound))
}

func TestIsSeesThroughWrapAroundMark(t *testing.T) {
	cause := errors.New("invalid phone number format")
	err := errs.Wrap(errs.Mark(cause, errs.ErrDomainValidation), "create booking")

	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	assert.True(t, errs.Is(err, cause))
}

func TestMarkNilReturnsMarker(t *testing.T) {
	err := errs.Mark(nil, errs.ErrDomainValidation)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
}
