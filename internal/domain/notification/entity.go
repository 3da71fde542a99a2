package notification

import (
	"errors"
	"fmt"

	"clinic-booking-api/internal/pkg/sanitize"
)

var (
	ErrInvalidType    = errors.New("invalid notification type")
	ErrEmptyRecipient = errors.New("notification recipient phone is required")
	ErrEmptyContent   = errors.New("notification title and message are required")
)

type Type string

const (
	TypeBookingCreated     Type = "booking_created"
	TypeBookingConfirmed   Type = "booking_confirmed"
	TypeBookingCompleted   Type = "booking_completed"
	TypeBookingCancelled   Type = "booking_cancelled"
	TypeBookingRescheduled Type = "booking_rescheduled"
	TypeSystem             Type = "system"
)

var validTypes = map[Type]struct{}{
	TypeBookingCreated:     {},
	TypeBookingConfirmed:   {},
	TypeBookingCompleted:   {},
	TypeBookingCancelled:   {},
	TypeBookingRescheduled: {},
	TypeSystem:             {},
}

func (t Type) IsValid() bool {
	_, ok := validTypes[t]
	return ok
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Notification struct {
	userPhone string
	kind      Type
	title     string
	message   string
	bookingID *string
}

func New(userPhone string, kind Type, title, message string, bookingID *string) (*Notification, error) {
	if userPhone == "" {
		return nil, ErrEmptyRecipient
	}
	if !kind.IsValid() {
		return nil, ErrInvalidType
	}

	title = sanitize.String(title)
	message = sanitize.String(message)
	if title == "" || message == "" {
		return nil, ErrEmptyContent
	}

	return &Notification{
		userPhone: userPhone,
		kind:      kind,
		title:     title,
		message:   message,
		bookingID: bookingID,
	}, nil
}

func (n *Notification) UserPhone() string  { return n.userPhone }
func (n *Notification) Kind() Type         { return n.kind }
func (n *Notification) Title() string      { return n.title }
func (n *Notification) Message() string    { return n.message }
func (n *Notification) BookingID() *string { return n.bookingID }

// Lifecycle builders keep the user-facing wording in one place.

func NewBookingCreated(phone, bookingID, date, timeOfDay string) *Notification {
	return mustBookingEvent(phone, bookingID, TypeBookingCreated,
		"Booking Diterima",
		fmt.Sprintf("Booking %s berhasil dibuat untuk tanggal %s pukul %s dan sedang menunggu konfirmasi.", bookingID, date, timeOfDay))
}

func NewBookingConfirmed(phone, bookingID, date, timeOfDay string) *Notification {
	return mustBookingEvent(phone, bookingID, TypeBookingConfirmed,
		"Booking Dikonfirmasi",
		fmt.Sprintf("Booking %s telah dikonfirmasi untuk tanggal %s pukul %s.", bookingID, date, timeOfDay))
}

func NewBookingCompleted(phone, bookingID string) *Notification {
	return mustBookingEvent(phone, bookingID, TypeBookingCompleted,
		"Booking Selesai",
		fmt.Sprintf("Terima kasih, booking %s telah selesai.", bookingID))
}

func NewBookingCancelled(phone, bookingID string) *Notification {
	return mustBookingEvent(phone, bookingID, TypeBookingCancelled,
		"Booking Dibatalkan",
		fmt.Sprintf("Booking %s telah dibatalkan.", bookingID))
}

func NewBookingRescheduled(phone, bookingID, date, timeOfDay string) *Notification {
	return mustBookingEvent(phone, bookingID, TypeBookingRescheduled,
		"Jadwal Booking Diubah",
		fmt.Sprintf("Booking %s dijadwalkan ulang ke tanggal %s pukul %s.", bookingID, date, timeOfDay))
}

// mustBookingEvent never fails: the caller supplies a validated phone and a
// generated booking id, and the title/message templates are non-empty.
func mustBookingEvent(phone, bookingID string, kind Type, title, message string) *Notification {
	n, err := New(phone, kind, title, message, &bookingID)
	if err != nil {
		panic(err)
	}
	return n
}
