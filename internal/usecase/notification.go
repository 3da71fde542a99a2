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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultNotificationLimit = 50

// NotificationStatusFilter narrows a listing to read or unread rows.
type NotificationStatusFilter string

const (
	NotificationFilterAll    NotificationStatusFilter = ""
	NotificationFilterRead   NotificationStatusFilter = "read"
	NotificationFilterUnread NotificationStatusFilter = "unread"
)

func NewNotificationStatusFilter(s string) (NotificationStatusFilter, error) {
	switch f := NotificationStatusFilter(s); f {
	case NotificationFilterAll, NotificationFilterRead, NotificationFilterUnread:
		return f, nil
	default:
		return "", errs.ErrDomainValidation
	}
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*queries.NotificationView, error)
	FindByPhone(ctx context.Context, phone string, filter NotificationStatusFilter, limit int32) ([]*queries.NotificationView, error)
	UnreadCount(ctx context.Context, phone string) (int64, error)
	MarkRead(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, tx db.DBTX, phone string, at time.Time) (int64, error)
	SoftDelete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type NotificationUseCase interface {
	ListNotifications(ctx context.Context, phone string, filter NotificationStatusFilter, limit int32) ([]*queries.NotificationView, error)
	UnreadCount(ctx context.Context, phone string) (int64, error)
	CreateNotification(ctx context.Context, req reqdto.CreateNotificationRequest) error
	MarkRead(ctx context.Context, id uuid.UUID, phone string) error
	MarkAllRead(ctx context.Context, phone string) (int64, error)
	DeleteNotification(ctx context.Context, id uuid.UUID, phone string) error
}

type notificationUseCaseImpl struct {
	notificationRepo NotificationRepository
	db               *pgxpool.Pool
	clock            clock.Clock
}

func NewNotificationUseCase(notificationRepo NotificationRepository, pool *pgxpool.Pool, clock clock.Clock) NotificationUseCase {
	return &notificationUseCaseImpl{
		notificationRepo: notificationRepo,
		db:               pool,
		clock:            clock,
	}
}

func (n *notificationUseCaseImpl) ListNotifications(ctx context.Context, phone string, filter NotificationStatusFilter, limit int32) ([]*queries.NotificationView, error) {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}

	views, err := n.notificationRepo.FindByPhone(ctx, cleanPhone.Value(), filter, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list notifications")
	}
	return views, nil
}

func (n *notificationUseCaseImpl) UnreadCount(ctx context.Context, phone string) (int64, error) {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDomainValidation)
	}

	count, err := n.notificationRepo.UnreadCount(ctx, cleanPhone.Value())
	if err != nil {
		return 0, errs.Wrap(err, "failed to count unread notifications")
	}
	return count, nil
}

func (n *notificationUseCaseImpl) CreateNotification(ctx context.Context, req reqdto.CreateNotificationRequest) error {
	entity, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := n.notificationRepo.Create(ctx, n.db, entity); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (n *notificationUseCaseImpl) MarkRead(ctx context.Context, id uuid.UUID, phone string) error {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	view, err := n.findOwned(ctx, id, cleanPhone.Value())
	if err != nil {
		return err
	}
	if view.IsRead {
		return nil
	}

	if err := n.notificationRepo.MarkRead(ctx, n.db, id, n.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (n *notificationUseCaseImpl) MarkAllRead(ctx context.Context, phone string) (int64, error) {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDomainValidation)
	}

	count, err := n.notificationRepo.MarkAllRead(ctx, n.db, cleanPhone.Value(), n.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return count, nil
}

func (n *notificationUseCaseImpl) DeleteNotification(ctx context.Context, id uuid.UUID, phone string) error {
	cleanPhone, err := booking.NewPhone(phone)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	if _, err := n.findOwned(ctx, id, cleanPhone.Value()); err != nil {
		return err
	}

	if err := n.notificationRepo.SoftDelete(ctx, n.db, id); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (n *notificationUseCaseImpl) findOwned(ctx context.Context, id uuid.UUID, phone string) (*queries.NotificationView, error) {
	view, err := n.notificationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrNotificationNotFound
		}
		return nil, errs.Wrap(err, "failed to find notification")
	}
	if view.UserPhone != phone {
		return nil, errs.ErrNotificationAccessDenied
	}
	return view, nil
}
