package bootstrap

import (
	"time"

	"clinic-booking-api/internal/pkg/config"
	"clinic-booking-api/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_EXPIRATION: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, duration)
}
