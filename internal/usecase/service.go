package usecase

import (
	"context"

	"clinic-booking-api/internal/domain/service"
	reqdto "clinic-booking-api/internal/handler/dto/request"
	"clinic-booking-api/internal/infra"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/errs"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository interface {
	ActiveCatalog(ctx context.Context) ([]*queries.CategoryView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*queries.CategoryView, error)
	FindActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*queries.ServiceView, error)
	Create(ctx context.Context, tx db.DBTX, entity *service.Service) (*queries.ServiceView, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, patch service.Patch) (*queries.ServiceView, error)
	Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ServiceUseCase interface {
	GetCatalog(ctx context.Context) ([]*queries.CategoryView, error)
	GetService(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error)
	GetServicesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*queries.ServiceView, error)
	CreateService(ctx context.Context, req reqdto.CreateServiceRequest) (*queries.ServiceView, error)
	UpdateService(ctx context.Context, id uuid.UUID, req reqdto.UpdateServiceRequest) (*queries.ServiceView, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type serviceUseCaseImpl struct {
	serviceRepo ServiceRepository
	db          *pgxpool.Pool
}

func NewServiceUseCase(serviceRepo ServiceRepository, pool *pgxpool.Pool) ServiceUseCase {
	return &serviceUseCaseImpl{
		serviceRepo: serviceRepo,
		db:          pool,
	}
}

// GetCatalog returns active categories with their active services; categories
// whose services are all inactive are filtered out by the repository query.
func (s *serviceUseCaseImpl) GetCatalog(ctx context.Context) ([]*queries.CategoryView, error) {
	catalog, err := s.serviceRepo.ActiveCatalog(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load service catalog")
	}
	return catalog, nil
}

func (s *serviceUseCaseImpl) GetService(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	view, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		return nil, errs.Wrap(err, "failed to find service")
	}
	return view, nil
}

func (s *serviceUseCaseImpl) GetServicesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*queries.ServiceView, error) {
	if _, err := s.serviceRepo.FindCategoryByID(ctx, categoryID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, errs.Wrap(err, "failed to find service category")
	}

	views, err := s.serviceRepo.FindActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list services by category")
	}
	return views, nil
}

func (s *serviceUseCaseImpl) CreateService(ctx context.Context, req reqdto.CreateServiceRequest) (*queries.ServiceView, error) {
	entity, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	view, err := s.serviceRepo.Create(ctx, s.db, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (s *serviceUseCaseImpl) UpdateService(ctx context.Context, id uuid.UUID, req reqdto.UpdateServiceRequest) (*queries.ServiceView, error) {
	patch, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	view, err := s.serviceRepo.Update(ctx, s.db, id, patch)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// DeleteService is a soft delete: the row stays for historical bookings but
// drops out of the public catalog.
func (s *serviceUseCaseImpl) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceRepo.Deactivate(ctx, s.db, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrServiceNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
