package repository

import (
	"context"
	"errors"
	"time"

	"clinic-booking-api/internal/domain/notification"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const insertNotificationSQL = `
INSERT INTO notifications (id, user_phone, type, title, message, booking_id)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error {
	_, err := tx.Exec(ctx, insertNotificationSQL,
		uuid.New(),
		n.UserPhone(),
		string(n.Kind()),
		n.Title(),
		n.Message(),
		n.BookingID(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("unknown booking for notification", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to insert notification", err)
	}
	return nil
}

const selectNotificationSQL = `
SELECT id, user_phone, type, title, message, is_read, booking_id, created_at, read_at
FROM notifications
WHERE id = $1 AND NOT is_deleted`

func (r *NotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.NotificationView, error) {
	view, err := scanNotificationRow(r.db.QueryRow(ctx, selectNotificationSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("notification not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find notification", err)
	}
	return view, nil
}

const selectNotificationsByPhoneSQL = `
SELECT id, user_phone, type, title, message, is_read, booking_id, created_at, read_at
FROM notifications
WHERE user_phone = $1 AND NOT is_deleted
	AND ($2::boolean IS NULL OR is_read = $2)
ORDER BY created_at DESC
LIMIT $3`

func (r *NotificationRepository) FindByPhone(ctx context.Context, phone string, filter usecase.NotificationStatusFilter, limit int32) ([]*queries.NotificationView, error) {
	var isRead *bool
	switch filter {
	case usecase.NotificationFilterRead:
		v := true
		isRead = &v
	case usecase.NotificationFilterUnread:
		v := false
		isRead = &v
	}

	rows, err := r.db.Query(ctx, selectNotificationsByPhoneSQL, phone, isRead, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	views := make([]*queries.NotificationView, 0, limit)
	for rows.Next() {
		view, err := scanNotificationRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification rows", err)
	}

	return views, nil
}

const countUnreadSQL = `
SELECT count(*) FROM notifications
WHERE user_phone = $1 AND NOT is_read AND NOT is_deleted`

func (r *NotificationRepository) UnreadCount(ctx context.Context, phone string) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countUnreadSQL, phone).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return count, nil
}

const markReadSQL = `
UPDATE notifications SET is_read = true, read_at = $2
WHERE id = $1 AND NOT is_deleted`

func (r *NotificationRepository) MarkRead(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	tag, err := tx.Exec(ctx, markReadSQL, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const markAllReadSQL = `
UPDATE notifications SET is_read = true, read_at = $2
WHERE user_phone = $1 AND NOT is_read AND NOT is_deleted`

func (r *NotificationRepository) MarkAllRead(ctx context.Context, tx db.DBTX, phone string, at time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, markAllReadSQL, phone, at)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}

const softDeleteNotificationSQL = `
UPDATE notifications SET is_deleted = true WHERE id = $1 AND NOT is_deleted`

func (r *NotificationRepository) SoftDelete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, softDeleteNotificationSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete notification", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanNotificationRow(row pgx.Row) (*queries.NotificationView, error) {
	var view queries.NotificationView
	err := row.Scan(
		&view.ID,
		&view.UserPhone,
		&view.Type,
		&view.Title,
		&view.Message,
		&view.IsRead,
		&view.BookingID,
		&view.CreatedAt,
		&view.ReadAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
