package components

import (
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewTokenValidator,
		usecase.NewAuthUseCase,
		usecase.NewBookingUseCase,
		usecase.NewServiceUseCase,
		usecase.NewNotificationUseCase,
	),
)
