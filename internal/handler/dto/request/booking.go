package request

import (
	"time"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type SelectedServiceRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Price string `json:"price" binding:"required"`
}

type CreateBookingRequest struct {
	PatientName     string                   `json:"patient_name" binding:"required"`
	PatientPhone    string                   `json:"patient_phone" binding:"required"`
	PatientAddress  string                   `json:"patient_address" binding:"required"`
	PatientNotes    string                   `json:"patient_notes"`
	AppointmentDate string                   `json:"appointment_date" binding:"required"`
	AppointmentTime string                   `json:"appointment_time" binding:"required"`
	Services        []SelectedServiceRequest `json:"selected_services" binding:"required"`
}

func (r CreateBookingRequest) ToDomain(now time.Time) (*booking.Booking, error) {
	name, err := booking.NewPatientName(r.PatientName)
	if err != nil {
		return nil, err
	}

	phone, err := booking.NewPhone(r.PatientPhone)
	if err != nil {
		return nil, err
	}

	date, err := booking.NewAppointmentDate(r.AppointmentDate, now)
	if err != nil {
		return nil, err
	}

	timeOfDay, err := booking.NewAppointmentTime(r.AppointmentTime)
	if err != nil {
		return nil, err
	}

	services := make([]booking.SelectedService, 0, len(r.Services))
	for _, s := range r.Services {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, errs.ErrInvalidBookingService
		}
		services = append(services, booking.SelectedService{
			ID:    id,
			Name:  s.Name,
			Price: s.Price,
		})
	}

	return booking.NewBooking(now, name, phone, r.PatientAddress, r.PatientNotes, date, timeOfDay, services)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleBookingRequest struct {
	PatientPhone    string `json:"patient_phone" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
}
