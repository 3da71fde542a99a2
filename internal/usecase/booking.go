package usecase

import (
	"context"
	"time"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/domain/notification"
	reqdto "clinic-booking-api/internal/handler/dto/request"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase/queries"
	"clinic-booking-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

// maxIDRetries bounds regeneration attempts after a booking id collision.
const maxIDRetries = 3

// maxTxRetries bounds serialization/deadlock retries on contended writes.
const maxTxRetries = 2

const historyLimit = 10

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, id string) (*queries.BookingView, error)
	FindByIDTx(ctx context.Context, tx db.DBTX, id string) (*queries.BookingView, error)
	Snapshot(ctx context.Context, id string) (*queries.BookingSnapshot, error)
	List(ctx context.Context, filter queries.BookingListFilter) ([]*queries.BookingView, int64, error)
	HistoryByPhone(ctx context.Context, phone string, limit int32) ([]*queries.BookingHistoryItem, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id string, from, to booking.Status, at time.Time) error
	Reschedule(ctx context.Context, tx db.DBTX, id string, date booking.AppointmentDate, timeOfDay booking.AppointmentTime, datetimeUTC time.Time) error
	Delete(ctx context.Context, id string) error
}

// NotificationWriter is the slice of the notification repository the booking
// flow needs: lifecycle notifications ride the same transaction as the
// booking write.
type NotificationWriter interface {
	Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest) (*queries.BookingView, error)
	GetBooking(ctx context.Context, id string) (*queries.BookingView, error)
	CheckBooking(ctx context.Context, id string) (*queries.BookingCheckView, error)
	ListBookings(ctx context.Context, filter queries.BookingListFilter) ([]*queries.BookingView, int64, error)
	BookingHistory(ctx context.Context, phone string) ([]*queries.BookingHistoryItem, error)
	UpdateBookingStatus(ctx context.Context, id string, newStatus string) (*queries.BookingView, error)
	RescheduleBooking(ctx context.Context, id string, phone, newDate, newTime string) (*queries.BookingView, error)
	DeleteBooking(ctx context.Context, id string) error
}

type bookingUseCaseImpl struct {
	bookingRepo      BookingRepository
	notificationRepo NotificationWriter
	db               *pgxpool.Pool
	clock            clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	notificationRepo NotificationWriter,
	pool *pgxpool.Pool,
	clock clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		db:               pool,
		clock:            clock,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest) (*queries.BookingView, error) {
	entity, err := req.ToDomain(u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// A failed insert aborts the transaction, so every id attempt runs in a
	// fresh one.
	for attempt := 0; attempt <= maxIDRetries; attempt++ {
		view, err := u.insertBooking(ctx, entity)
		if err == nil {
			return view, nil
		}

		if errs.Is(err, errs.ErrDuplicateBooking) {
			return nil, err
		}
		if infra.IsKind(err, infra.KindDuplicateKey) {
			entity.RegenerateID(u.clock.Now())
			continue
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return nil, errs.ErrBookingIDExhausted
}

func (u *bookingUseCaseImpl) insertBooking(ctx context.Context, entity *booking.Booking) (*queries.BookingView, error) {
	return shared.RunInTx(ctx, u.db, func(tx db.DBTX) (*queries.BookingView, error) {
		if err := u.bookingRepo.Create(ctx, tx, entity); err != nil {
			return nil, err
		}

		created := notification.NewBookingCreated(
			entity.PatientPhone().Value(),
			entity.ID(),
			entity.Date().String(),
			entity.TimeOfDay().Value(),
		)
		if err := u.notificationRepo.Create(ctx, tx, created); err != nil {
			return nil, err
		}

		return u.bookingRepo.FindByIDTx(ctx, tx, entity.ID())
	})
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id string) (*queries.BookingView, error) {
	view, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

// CheckBooking is the public status lookup by booking id: the opaque id is
// the access key, so the caller gets a trimmed view without authentication.
func (u *bookingUseCaseImpl) CheckBooking(ctx context.Context, id string) (*queries.BookingCheckView, error) {
	view, err := u.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	return &queries.BookingCheckView{
		ID:              view.ID,
		PatientName:     view.PatientName,
		PatientPhone:    view.PatientPhone,
		AppointmentDate: view.AppointmentDate,
		AppointmentTime: view.AppointmentTime,
		Status:          view.Status,
		Services:        view.Services,
	}, nil
}

func (u *bookingUseCaseImpl) ListBookings(ctx context.Context, filter queries.BookingListFilter) ([]*queries.BookingView, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	views, total, err := u.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errs.Wrap(err, "failed to list bookings")
	}
	return views, total, nil
}

func (u *bookingUseCaseImpl) BookingHistory(ctx context.Context, phone string) ([]*queries.BookingHistoryItem, error) {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	items, err := u.bookingRepo.HistoryByPhone(ctx, cleanPhone.Value(), historyLimit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booking history")
	}
	return items, nil
}

func (u *bookingUseCaseImpl) UpdateBookingStatus(ctx context.Context, id string, newStatus string) (*queries.BookingView, error) {
	next, err := booking.NewStatus(newStatus)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snap, err := u.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking status is corrupt")
	}
	if !current.CanTransitionTo(next) {
		return nil, errs.ErrIllegalStatusChange
	}

	return shared.RunInTxWithRetry(ctx, u.db, maxTxRetries, func(tx db.DBTX) (*queries.BookingView, error) {
		// The update is guarded on the expected current status so a
		// concurrent transition loses instead of double-applying.
		err := u.bookingRepo.UpdateStatus(ctx, tx, id, current, next, u.clock.Now())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrIllegalStatusChange
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		view, err := u.bookingRepo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if n := statusNotification(view, next); n != nil {
			if err := u.notificationRepo.Create(ctx, tx, n); err != nil {
				return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		return view, nil
	})
}

func (u *bookingUseCaseImpl) RescheduleBooking(ctx context.Context, id string, phone, newDate, newTime string) (*queries.BookingView, error) {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	now := u.clock.Now()
	date, err := booking.NewAppointmentDate(newDate, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	timeOfDay, err := booking.NewAppointmentTime(newTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snap, err := u.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap.PatientPhone != cleanPhone.Value() {
		return nil, errs.ErrBookingAccessDenied
	}

	current, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking status is corrupt")
	}
	if current.IsTerminal() {
		return nil, errs.ErrIllegalStatusChange
	}

	return shared.RunInTxWithRetry(ctx, u.db, maxTxRetries, func(tx db.DBTX) (*queries.BookingView, error) {
		err := u.bookingRepo.Reschedule(ctx, tx, id, date, timeOfDay, booking.CombineToUTC(date, timeOfDay))
		if err != nil {
			if errs.Is(err, errs.ErrDuplicateBooking) {
				return nil, err
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		rescheduled := notification.NewBookingRescheduled(cleanPhone.Value(), id, date.String(), timeOfDay.Value())
		if err := u.notificationRepo.Create(ctx, tx, rescheduled); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		view, err := u.bookingRepo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return view, nil
	})
}

func (u *bookingUseCaseImpl) DeleteBooking(ctx context.Context, id string) error {
	if err := u.bookingRepo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Wrap(err, "failed to delete booking")
	}
	return nil
}

func (u *bookingUseCaseImpl) snapshot(ctx context.Context, id string) (*queries.BookingSnapshot, error) {
	snap, err := u.bookingRepo.Snapshot(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to load booking")
	}
	return snap, nil
}

func statusNotification(view *queries.BookingView, next booking.Status) *notification.Notification {
	switch next {
	case booking.StatusConfirmed:
		return notification.NewBookingConfirmed(view.PatientPhone, view.ID, view.AppointmentDate, view.AppointmentTime)
	case booking.StatusCompleted:
		return notification.NewBookingCompleted(view.PatientPhone, view.ID)
	case booking.StatusCancelled:
		return notification.NewBookingCancelled(view.PatientPhone, view.ID)
	default:
		return nil
	}
}
