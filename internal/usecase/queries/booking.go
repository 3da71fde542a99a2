package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID                  string               `json:"id"`
	PatientName         string               `json:"patient_name"`
	PatientPhone        string               `json:"patient_phone"`
	PatientAddress      string               `json:"patient_address"`
	PatientNotes        string               `json:"patient_notes"`
	AppointmentDate     string               `json:"appointment_date"`
	AppointmentTime     string               `json:"appointment_time"`
	AppointmentDatetime time.Time            `json:"appointment_datetime"`
	Status              string               `json:"status"`
	TotalPrice          int64                `json:"total_price"`
	CreatedAt           time.Time            `json:"created_at"`
	ConfirmedAt         *time.Time           `json:"confirmed_at,omitempty"`
	CompletedAt         *time.Time           `json:"completed_at,omitempty"`
	CancelledAt         *time.Time           `json:"cancelled_at,omitempty"`
	Services            []BookingServiceView `json:"booking_services"`
}

type BookingServiceView struct {
	ID           int64     `json:"id"`
	BookingID    string    `json:"booking_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice string    `json:"service_price"`
	PriceNumeric int64     `json:"price_numeric"`
}

// BookingCheckView is the trimmed public shape for the booking status check.
type BookingCheckView struct {
	ID              string               `json:"id"`
	PatientName     string               `json:"patient_name"`
	PatientPhone    string               `json:"patient_phone"`
	AppointmentDate string               `json:"appointment_date"`
	AppointmentTime string               `json:"appointment_time"`
	Status          string               `json:"status"`
	Services        []BookingServiceView `json:"booking_services"`
}

type BookingHistoryItem struct {
	ID              string               `json:"id"`
	PatientName     string               `json:"patient_name"`
	AppointmentDate string               `json:"appointment_date"`
	AppointmentTime string               `json:"appointment_time"`
	Status          string               `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	Services        []BookingServiceView `json:"booking_services"`
}

// BookingSnapshot is the minimal row used for transition and ownership
// checks before a write.
type BookingSnapshot struct {
	ID           string
	PatientPhone string
	Status       string
}

type BookingListFilter struct {
	Status    string
	Date      string
	Limit     int32
	Offset    int32
	SortBy    string
	SortOrder string
}
