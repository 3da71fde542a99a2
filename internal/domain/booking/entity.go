package booking

import (
	"time"

	"clinic-booking-api/internal/pkg/sanitize"

	"github.com/google/uuid"
)

const defaultNotes = "Tidak ada catatan"

// SelectedService is one catalog choice as submitted by the public booking
// form: the catalog id plus the display name and display price the patient
// saw at selection time.
type SelectedService struct {
	ID    uuid.UUID
	Name  string
	Price string
}

func (s SelectedService) Validate() error {
	if s.ID == uuid.Nil || s.Name == "" || s.Price == "" {
		return ErrEmptyService
	}
	return nil
}

type LineItem struct {
	serviceID    uuid.UUID
	serviceName  string
	servicePrice string
	priceNumeric int64
}

func (li LineItem) ServiceID() uuid.UUID { return li.serviceID }
func (li LineItem) ServiceName() string  { return li.serviceName }
func (li LineItem) ServicePrice() string { return li.servicePrice }
func (li LineItem) PriceNumeric() int64  { return li.priceNumeric }

// Booking is the aggregate for one appointment slot: patient identity,
// schedule (local fields plus the derived UTC instant) and the selected
// services as line items with a derived total.
type Booking struct {
	id             string
	patientName    PatientName
	patientPhone   Phone
	patientAddress string
	patientNotes   string
	date           AppointmentDate
	timeOfDay      AppointmentTime
	datetimeUTC    time.Time
	status         Status
	totalPrice     int64
	lineItems      []LineItem
}

func NewBooking(
	now time.Time,
	name PatientName,
	phone Phone,
	address string,
	notes string,
	date AppointmentDate,
	timeOfDay AppointmentTime,
	services []SelectedService,
) (*Booking, error) {
	if len(services) == 0 {
		return nil, ErrNoLineItems
	}

	items := make([]LineItem, 0, len(services))
	var total int64
	for _, s := range services {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		numeric := ExtractPrice(s.Price)
		total += numeric
		items = append(items, LineItem{
			serviceID:    s.ID,
			serviceName:  sanitize.String(s.Name),
			servicePrice: sanitize.String(s.Price),
			priceNumeric: numeric,
		})
	}

	cleanNotes := sanitize.String(notes)
	if cleanNotes == "" {
		cleanNotes = defaultNotes
	}

	return &Booking{
		id:             NewID(now),
		patientName:    name,
		patientPhone:   phone,
		patientAddress: sanitize.String(address),
		patientNotes:   cleanNotes,
		date:           date,
		timeOfDay:      timeOfDay,
		datetimeUTC:    CombineToUTC(date, timeOfDay),
		status:         StatusPending,
		totalPrice:     total,
		lineItems:      items,
	}, nil
}

// RegenerateID replaces the identifier after a primary-key collision.
func (b *Booking) RegenerateID(now time.Time) {
	b.id = NewID(now)
}

func (b *Booking) ID() string                 { return b.id }
func (b *Booking) PatientName() PatientName   { return b.patientName }
func (b *Booking) PatientPhone() Phone        { return b.patientPhone }
func (b *Booking) PatientAddress() string     { return b.patientAddress }
func (b *Booking) PatientNotes() string       { return b.patientNotes }
func (b *Booking) Date() AppointmentDate      { return b.date }
func (b *Booking) TimeOfDay() AppointmentTime { return b.timeOfDay }
func (b *Booking) DatetimeUTC() time.Time     { return b.datetimeUTC }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) TotalPrice() int64          { return b.totalPrice }
func (b *Booking) LineItems() []LineItem      { return b.lineItems }
