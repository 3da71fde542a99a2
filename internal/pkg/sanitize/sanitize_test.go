//go:build unit

package sanitize_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"clinic-booking-api/internal/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Budi Santoso", "Budi Santoso"},
		{"  padded  ", "padded"},
		{`Robert'); DROP TABLE bookings;--`, "Robert) DROP TABLE bookings--"},
		{`back\slash`, "backslash"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitize.String(tc.input), "input %q", tc.input)
	}
}

func TestStringCapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	assert.Len(t, sanitize.String(long), 255)
}

func TestStringCapsOnRuneBoundary(t *testing.T) {
	// A two-byte rune straddles the 255-byte cap; the cut must not split it.
	long := strings.Repeat("a", 254) + "é" + strings.Repeat("b", 20)

	got := sanitize.String(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 254), got)
}

func TestPhone(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0812-3456-7890", "081234567890"},
		{"(+62) 812 3456 7890", "+6281234567890"},
		{" 081234567890\t", "081234567890"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitize.Phone(tc.input), "input %q", tc.input)
	}
}
