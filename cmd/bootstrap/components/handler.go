package components

import (
	"clinic-booking-api/internal/handler"
	"clinic-booking-api/internal/handler/api"
	"clinic-booking-api/internal/handler/middleware"
	"clinic-booking-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
		middleware.NewMemoryCounterStore,
		middleware.NewRateLimiter,
		middleware.NewAuthMiddleware,
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewServiceHandler,
		api.NewNotificationHandler,
	),
	fx.Invoke(handler.NewRouter),
)
