package repository

import (
	"context"
	"errors"

	"clinic-booking-api/internal/domain/service"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ServiceRepository struct {
	db db.DBTX
}

func NewServiceRepository(db db.DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const selectCatalogSQL = `
SELECT c.id, c.name, c.description, c.icon, c.display_order,
	s.id, s.name, s.description, s.base_price, s.category_id,
	s.display_order, s.is_active, s.created_at, s.updated_at
FROM service_categories c
JOIN services s ON s.category_id = c.id AND s.is_active
WHERE c.is_active
ORDER BY c.display_order, c.id, s.display_order, s.id`

// ActiveCatalog returns active categories with their active services. The
// inner join drops categories whose services are all inactive.
func (r *ServiceRepository) ActiveCatalog(ctx context.Context) ([]*queries.CategoryView, error) {
	rows, err := r.db.Query(ctx, selectCatalogSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load service catalog", err)
	}
	defer rows.Close()

	var (
		catalog []*queries.CategoryView
		current *queries.CategoryView
	)
	for rows.Next() {
		var (
			category queries.CategoryView
			svc      queries.ServiceView
		)
		err := rows.Scan(
			&category.ID, &category.Name, &category.Description, &category.Icon, &category.DisplayOrder,
			&svc.ID, &svc.Name, &svc.Description, &svc.BasePrice, &svc.CategoryID,
			&svc.DisplayOrder, &svc.IsActive, &svc.CreatedAt, &svc.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan catalog row", err)
		}

		if current == nil || current.ID != category.ID {
			category.IsActive = true
			current = &category
			catalog = append(catalog, current)
		}
		current.Services = append(current.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate catalog rows", err)
	}

	return catalog, nil
}

const selectServiceSQL = `
SELECT id, name, description, base_price, category_id, display_order,
	is_active, created_at, updated_at
FROM services
WHERE id = $1`

func (r *ServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	view, err := scanServiceRow(r.db.QueryRow(ctx, selectServiceSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return view, nil
}

const selectCategorySQL = `
SELECT id, name, description, icon, display_order, is_active
FROM service_categories
WHERE id = $1`

func (r *ServiceRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*queries.CategoryView, error) {
	var view queries.CategoryView
	err := r.db.QueryRow(ctx, selectCategorySQL, id).
		Scan(&view.ID, &view.Name, &view.Description, &view.Icon, &view.DisplayOrder, &view.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service category", err)
	}
	return &view, nil
}

const selectServicesByCategorySQL = `
SELECT id, name, description, base_price, category_id, display_order,
	is_active, created_at, updated_at
FROM services
WHERE category_id = $1 AND is_active
ORDER BY display_order, id`

func (r *ServiceRepository) FindActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*queries.ServiceView, error) {
	rows, err := r.db.Query(ctx, selectServicesByCategorySQL, categoryID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services by category", err)
	}
	defer rows.Close()

	var views []*queries.ServiceView
	for rows.Next() {
		view, err := scanServiceRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", err)
	}

	return views, nil
}

const insertServiceSQL = `
INSERT INTO services (id, name, description, base_price, category_id, display_order)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, description, base_price, category_id, display_order,
	is_active, created_at, updated_at`

func (r *ServiceRepository) Create(ctx context.Context, tx db.DBTX, entity *service.Service) (*queries.ServiceView, error) {
	view, err := scanServiceRow(tx.QueryRow(ctx, insertServiceSQL,
		uuid.New(),
		entity.Name(),
		entity.Description(),
		entity.BasePrice(),
		entity.CategoryID(),
		entity.DisplayOrder(),
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, infra.WrapRepoErr("unknown service category", err, infra.KindForeignKeyViolated)
		}
		return nil, infra.WrapRepoErr("failed to insert service", err)
	}
	return view, nil
}

const updateServiceSQL = `
UPDATE services SET
	name = COALESCE($2, name),
	description = COALESCE($3, description),
	base_price = COALESCE($4, base_price),
	category_id = COALESCE($5, category_id),
	display_order = COALESCE($6, display_order),
	is_active = COALESCE($7, is_active),
	updated_at = now()
WHERE id = $1
RETURNING id, name, description, base_price, category_id, display_order,
	is_active, created_at, updated_at`

func (r *ServiceRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, patch service.Patch) (*queries.ServiceView, error) {
	view, err := scanServiceRow(tx.QueryRow(ctx, updateServiceSQL,
		id,
		patch.Name,
		patch.Description,
		patch.BasePrice,
		patch.CategoryID,
		patch.DisplayOrder,
		patch.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		if isForeignKeyViolation(err) {
			return nil, infra.WrapRepoErr("unknown service category", err, infra.KindForeignKeyViolated)
		}
		return nil, infra.WrapRepoErr("failed to update service", err)
	}
	return view, nil
}

const deactivateServiceSQL = `
UPDATE services SET is_active = false, updated_at = now() WHERE id = $1`

func (r *ServiceRepository) Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deactivateServiceSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanServiceRow(row pgx.Row) (*queries.ServiceView, error) {
	var view queries.ServiceView
	err := row.Scan(
		&view.ID,
		&view.Name,
		&view.Description,
		&view.BasePrice,
		&view.CategoryID,
		&view.DisplayOrder,
		&view.IsActive,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
