package service

import (
	"errors"

	"clinic-booking-api/internal/pkg/sanitize"

	"github.com/google/uuid"
)

var (
	ErrInvalidName     = errors.New("service name is required")
	ErrInvalidPrice    = errors.New("service price must not be negative")
	ErrInvalidCategory = errors.New("service category is required")
	ErrEmptyPatch      = errors.New("at least one field must be provided")
)

// Service is the catalog entry as accepted for a create.
type Service struct {
	name         string
	description  string
	basePrice    int64
	categoryID   uuid.UUID
	displayOrder int32
}

func NewService(name, description string, basePrice int64, categoryID uuid.UUID, displayOrder int32) (*Service, error) {
	name = sanitize.String(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if basePrice < 0 {
		return nil, ErrInvalidPrice
	}
	if categoryID == uuid.Nil {
		return nil, ErrInvalidCategory
	}

	return &Service{
		name:         name,
		description:  sanitize.String(description),
		basePrice:    basePrice,
		categoryID:   categoryID,
		displayOrder: displayOrder,
	}, nil
}

func (s *Service) Name() string          { return s.name }
func (s *Service) Description() string   { return s.description }
func (s *Service) BasePrice() int64      { return s.basePrice }
func (s *Service) CategoryID() uuid.UUID { return s.categoryID }
func (s *Service) DisplayOrder() int32   { return s.displayOrder }

// Patch is a partial update: nil fields keep the stored value.
type Patch struct {
	Name         *string
	Description  *string
	BasePrice    *int64
	CategoryID   *uuid.UUID
	DisplayOrder *int32
	IsActive     *bool
}

func (p Patch) Validate() error {
	if p.Name == nil && p.Description == nil && p.BasePrice == nil &&
		p.CategoryID == nil && p.DisplayOrder == nil && p.IsActive == nil {
		return ErrEmptyPatch
	}
	if p.Name != nil && sanitize.String(*p.Name) == "" {
		return ErrInvalidName
	}
	if p.BasePrice != nil && *p.BasePrice < 0 {
		return ErrInvalidPrice
	}
	if p.CategoryID != nil && *p.CategoryID == uuid.Nil {
		return ErrInvalidCategory
	}
	return nil
}
