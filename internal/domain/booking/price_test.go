//go:build unit

package booking_test

import (
	"testing"

	"clinic-booking-api/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"Rp 150.000", 150000},
		{"Rp 1.500.000", 1500000},
		{"150000", 150000},
		{"Rp 0", 0},
		{"", 0},
		{"gratis", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, booking.ExtractPrice(tc.input), "input %q", tc.input)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		input int64
		want  string
	}{
		{150000, "Rp 150.000"},
		{1500000, "Rp 1.500.000"},
		{999, "Rp 999"},
		{1000, "Rp 1.000"},
		{0, "Rp 0"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, booking.FormatPrice(tc.input), "input %d", tc.input)
	}
}

func TestPriceRoundTrip(t *testing.T) {
	for _, price := range []int64{0, 500, 150000, 2750000} {
		assert.Equal(t, price, booking.ExtractPrice(booking.FormatPrice(price)))
	}
}
