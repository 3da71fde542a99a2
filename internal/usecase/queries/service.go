package queries

import (
	"time"

	"github.com/google/uuid"
)

type ServiceView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	BasePrice    int64     `json:"base_price"`
	CategoryID   uuid.UUID `json:"category_id"`
	DisplayOrder int32     `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CategoryView struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Icon         string        `json:"icon"`
	DisplayOrder int32         `json:"display_order"`
	IsActive     bool          `json:"is_active"`
	Services     []ServiceView `json:"services"`
}
