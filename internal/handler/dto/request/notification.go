package request

import (
	"clinic-booking-api/internal/domain/booking"
	"clinic-booking-api/internal/domain/notification"
)

type CreateNotificationRequest struct {
	UserPhone string  `json:"user_phone" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Message   string  `json:"message" binding:"required"`
	BookingID *string `json:"booking_id,omitempty"`
}

func (r CreateNotificationRequest) ToDomain() (*notification.Notification, error) {
	phone, err := booking.NewPhone(r.UserPhone)
	if err != nil {
		return nil, err
	}

	kind, err := notification.NewType(r.Type)
	if err != nil {
		return nil, err
	}

	return notification.New(phone.Value(), kind, r.Title, r.Message, r.BookingID)
}

type NotificationListRequest struct {
	Status string `form:"status"`
	Limit  int32  `form:"limit"`
}

type NotificationOwnerRequest struct {
	Phone string `json:"phone" binding:"required"`
}
