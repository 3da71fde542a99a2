package booking

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"clinic-booking-api/internal/pkg/sanitize"
)

var (
	ErrInvalidPhone   = errors.New("invalid phone number format")
	ErrInvalidDate    = errors.New("invalid appointment date")
	ErrInvalidTime    = errors.New("invalid appointment time")
	ErrInvalidName    = errors.New("invalid patient name")
	ErrEmptyService   = errors.New("service must have id, name and price")
	ErrNoLineItems    = errors.New("at least one service must be selected")
	ErrInvalidStatus  = errors.New("invalid booking status")
	ErrDateOutOfRange = errors.New("appointment date must be today or later, within one year")
)

// WIB is the clinic's fixed operating timezone (UTC+7). Appointment date and
// time fields are interpreted in this zone when deriving the UTC instant.
var WIB = time.FixedZone("WIB", 7*60*60)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	maxDaysAhead = 365
)

// Indonesian mobile format: 08xxxxxxxxxx, 628xxxxxxxxxx or +628xxxxxxxxxx.
var phoneRegex = regexp.MustCompile(`^(\+62|62|0)[0-9]{9,12}$`)

type Phone struct {
	value string
}

// NewPhone sanitizes separators first, then validates the remaining digits.
func NewPhone(s string) (Phone, error) {
	cleaned := sanitize.Phone(s)
	if !phoneRegex.MatchString(cleaned) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: cleaned}, nil
}

func (p Phone) Value() string {
	return p.value
}

type AppointmentDate struct {
	value time.Time // midnight WIB
}

// NewAppointmentDate parses a yyyy-MM-dd string and checks it falls inside
// [today, today+365d], both boundaries inclusive, relative to now in WIB.
func NewAppointmentDate(s string, now time.Time) (AppointmentDate, error) {
	d, err := time.ParseInLocation(DateLayout, s, WIB)
	if err != nil {
		return AppointmentDate{}, ErrInvalidDate
	}

	local := now.In(WIB)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
	limit := today.AddDate(0, 0, maxDaysAhead)

	if d.Before(today) || d.After(limit) {
		return AppointmentDate{}, ErrDateOutOfRange
	}
	return AppointmentDate{value: d}, nil
}

func (d AppointmentDate) Value() time.Time {
	return d.value
}

func (d AppointmentDate) String() string {
	return d.value.Format(DateLayout)
}

type AppointmentTime struct {
	value string
}

func NewAppointmentTime(s string) (AppointmentTime, error) {
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return AppointmentTime{}, ErrInvalidTime
	}
	return AppointmentTime{value: s}, nil
}

func (t AppointmentTime) Value() string {
	return t.value
}

type PatientName struct {
	value string
}

// NewPatientName requires at least two words after sanitization.
func NewPatientName(s string) (PatientName, error) {
	cleaned := sanitize.String(s)
	words := strings.Fields(cleaned)
	if len(words) < 2 {
		return PatientName{}, ErrInvalidName
	}
	return PatientName{value: cleaned}, nil
}

func (n PatientName) Value() string {
	return n.value
}

// CombineToUTC derives the unambiguous UTC instant from the local appointment
// date and time fields.
func CombineToUTC(date AppointmentDate, t AppointmentTime) time.Time {
	parsed, _ := time.Parse(TimeLayout, t.Value())
	d := date.Value()
	local := time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, WIB)
	return local.UTC()
}
