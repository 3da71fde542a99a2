package queries

import (
	"time"

	"github.com/google/uuid"
)

type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	UserPhone string     `json:"user_phone"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	BookingID *string    `json:"booking_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}
