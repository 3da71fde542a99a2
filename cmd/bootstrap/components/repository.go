package components

import (
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/infra/repository"
	"clinic-booking-api/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repository.NewServiceRepository,
			fx.As(new(usecase.ServiceRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(usecase.NotificationRepository)),
			fx.As(new(usecase.NotificationWriter)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
