package request

import (
	"clinic-booking-api/internal/domain/service"
	"clinic-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	BasePrice    int64  `json:"base_price" binding:"min=0"`
	CategoryID   string `json:"category_id" binding:"required"`
	DisplayOrder int32  `json:"display_order"`
}

func (r CreateServiceRequest) ToDomain() (*service.Service, error) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return nil, errs.ErrCategoryNotFound
	}
	return service.NewService(r.Name, r.Description, r.BasePrice, categoryID, r.DisplayOrder)
}

type UpdateServiceRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	BasePrice    *int64  `json:"base_price,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
	DisplayOrder *int32  `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r UpdateServiceRequest) ToDomain() (service.Patch, error) {
	patch := service.Patch{
		Name:         r.Name,
		Description:  r.Description,
		BasePrice:    r.BasePrice,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}

	if r.CategoryID != nil {
		categoryID, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return service.Patch{}, errs.ErrCategoryNotFound
		}
		patch.CategoryID = &categoryID
	}

	if err := patch.Validate(); err != nil {
		return service.Patch{}, err
	}
	return patch, nil
}
