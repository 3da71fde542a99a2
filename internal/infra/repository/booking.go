package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

// bookingPhoneDateConstraint backs the one-booking-per-phone-per-day rule;
// the name must match db/schema.sql.
const (
	bookingPhoneDateConstraint = "bookings_phone_date_key"
	bookingPKConstraint        = "bookings_pkey"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, patient_name, patient_phone, patient_address, patient_notes,
	appointment_date, appointment_time, appointment_datetime, status, total_price
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const insertBookingServiceSQL = `
INSERT INTO booking_services (
	booking_id, service_id, service_name, service_price, price_numeric
) VALUES ($1, $2, $3, $4, $5)`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.PatientName().Value(),
		b.PatientPhone().Value(),
		b.PatientAddress(),
		b.PatientNotes(),
		b.Date().Value(),
		b.TimeOfDay().Value(),
		b.DatetimeUTC(),
		b.Status().String(),
		b.TotalPrice(),
	)
	if err != nil {
		if isUniqueViolation(err, bookingPhoneDateConstraint) {
			return errs.Mark(err, errs.ErrDuplicateBooking)
		}
		if isUniqueViolation(err, bookingPKConstraint) {
			return infra.WrapRepoErr("booking id collision", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	for _, item := range b.LineItems() {
		_, err := tx.Exec(ctx, insertBookingServiceSQL,
			b.ID(),
			item.ServiceID(),
			item.ServiceName(),
			item.ServicePrice(),
			item.PriceNumeric(),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return infra.WrapRepoErr("unknown service in booking", err, infra.KindForeignKeyViolated)
			}
			return infra.WrapRepoErr("failed to insert booking service", err)
		}
	}

	return nil
}

const selectBookingSQL = `
SELECT id, patient_name, patient_phone, patient_address, patient_notes,
	appointment_date, appointment_time, appointment_datetime, status,
	total_price, created_at, confirmed_at, completed_at, cancelled_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*queries.BookingView, error) {
	return r.findByID(ctx, r.db, id)
}

func (r *BookingRepository) FindByIDTx(ctx context.Context, tx db.DBTX, id string) (*queries.BookingView, error) {
	return r.findByID(ctx, tx, id)
}

func (r *BookingRepository) findByID(ctx context.Context, q db.DBTX, id string) (*queries.BookingView, error) {
	view, err := scanBookingRow(q.QueryRow(ctx, selectBookingSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	services, err := r.loadServices(ctx, q, []string{view.ID})
	if err != nil {
		return nil, err
	}
	view.Services = services[view.ID]

	return view, nil
}

const selectBookingSnapshotSQL = `
SELECT id, patient_phone, status FROM bookings WHERE id = $1`

func (r *BookingRepository) Snapshot(ctx context.Context, id string) (*queries.BookingSnapshot, error) {
	var snap queries.BookingSnapshot
	err := r.db.QueryRow(ctx, selectBookingSnapshotSQL, id).
		Scan(&snap.ID, &snap.PatientPhone, &snap.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err)
	}
	return &snap, nil
}

// sortColumns is the whitelist for the admin listing; anything else falls
// back to created_at.
var sortColumns = map[string]string{
	"created_at":       "created_at",
	"appointment_date": "appointment_date",
	"status":           "status",
	"patient_name":     "patient_name",
	"total_price":      "total_price",
}

func (r *BookingRepository) List(ctx context.Context, filter queries.BookingListFilter) ([]*queries.BookingView, int64, error) {
	where := ""
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = fmt.Sprintf("WHERE status = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		if where == "" {
			where = fmt.Sprintf("WHERE appointment_date = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND appointment_date = $%d", len(args))
		}
	}

	var total int64
	countSQL := "SELECT count(*) FROM bookings " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	args = append(args, filter.Limit, filter.Offset)
	listSQL := fmt.Sprintf(`
SELECT id, patient_name, patient_phone, patient_address, patient_notes,
	appointment_date, appointment_time, appointment_datetime, status,
	total_price, created_at, confirmed_at, completed_at, cancelled_at
FROM bookings %s
ORDER BY %s %s
LIMIT $%d OFFSET $%d`, where, column, direction, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0, filter.Limit)
	ids := make([]string, 0, filter.Limit)
	for rows.Next() {
		view, err := scanBookingRow(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
		ids = append(ids, view.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	services, err := r.loadServices(ctx, r.db, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, view := range views {
		view.Services = services[view.ID]
	}

	return views, total, nil
}

const selectHistorySQL = `
SELECT id, patient_name, appointment_date, appointment_time, status, created_at
FROM bookings
WHERE patient_phone = $1
ORDER BY created_at DESC
LIMIT $2`

func (r *BookingRepository) HistoryByPhone(ctx context.Context, phone string, limit int32) ([]*queries.BookingHistoryItem, error) {
	rows, err := r.db.Query(ctx, selectHistorySQL, phone, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking history", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingHistoryItem, 0, limit)
	ids := make([]string, 0, limit)
	for rows.Next() {
		var (
			item queries.BookingHistoryItem
			date time.Time
		)
		if err := rows.Scan(&item.ID, &item.PatientName, &date, &item.AppointmentTime, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking history row", err)
		}
		item.AppointmentDate = date.Format(booking.DateLayout)
		items = append(items, &item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking history rows", err)
	}

	services, err := r.loadServices(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.Services = services[item.ID]
	}

	return items, nil
}

// statusTimestampColumns maps a target status to the column stamped on
// transition.
var statusTimestampColumns = map[booking.Status]string{
	booking.StatusConfirmed: "confirmed_at",
	booking.StatusCompleted: "completed_at",
	booking.StatusCancelled: "cancelled_at",
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id string, from, to booking.Status, at time.Time) error {
	sql := "UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3"
	if column, ok := statusTimestampColumns[to]; ok {
		sql = fmt.Sprintf("UPDATE bookings SET status = $1, %s = $4 WHERE id = $2 AND status = $3", column)
	}

	args := []any{to.String(), id, from.String()}
	if _, ok := statusTimestampColumns[to]; ok {
		args = append(args, at)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const rescheduleBookingSQL = `
UPDATE bookings
SET appointment_date = $2, appointment_time = $3, appointment_datetime = $4
WHERE id = $1`

func (r *BookingRepository) Reschedule(ctx context.Context, tx db.DBTX, id string, date booking.AppointmentDate, timeOfDay booking.AppointmentTime, datetimeUTC time.Time) error {
	tag, err := tx.Exec(ctx, rescheduleBookingSQL, id, date.Value(), timeOfDay.Value(), datetimeUTC)
	if err != nil {
		if isUniqueViolation(err, bookingPhoneDateConstraint) {
			return errs.Mark(err, errs.ErrDuplicateBooking)
		}
		return infra.WrapRepoErr("failed to reschedule booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const selectBookingServicesSQL = `
SELECT id, booking_id, service_id, service_name, service_price, price_numeric
FROM booking_services
WHERE booking_id = ANY($1)
ORDER BY id`

func (r *BookingRepository) loadServices(ctx context.Context, q db.DBTX, bookingIDs []string) (map[string][]queries.BookingServiceView, error) {
	grouped := make(map[string][]queries.BookingServiceView, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return grouped, nil
	}

	rows, err := q.Query(ctx, selectBookingServicesSQL, bookingIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking services", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item queries.BookingServiceView
		if err := rows.Scan(&item.ID, &item.BookingID, &item.ServiceID, &item.ServiceName, &item.ServicePrice, &item.PriceNumeric); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking service row", err)
		}
		grouped[item.BookingID] = append(grouped[item.BookingID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking service rows", err)
	}

	return grouped, nil
}

func scanBookingRow(row pgx.Row) (*queries.BookingView, error) {
	var (
		view queries.BookingView
		date time.Time
	)
	err := row.Scan(
		&view.ID,
		&view.PatientName,
		&view.PatientPhone,
		&view.PatientAddress,
		&view.PatientNotes,
		&date,
		&view.AppointmentTime,
		&view.AppointmentDatetime,
		&view.Status,
		&view.TotalPrice,
		&view.CreatedAt,
		&view.ConfirmedAt,
		&view.CompletedAt,
		&view.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	view.AppointmentDate = date.Format(booking.DateLayout)
	return &view, nil
}
