package bootstrap

import (
	"time"

	"leisure-booking-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.GatewayConfig { return cfg.Gateway },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.MQConfig { return cfg.MQ },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		NewVenueLocation,
	),
)

// NewVenueLocation loads the venue timezone all wall-clock arithmetic (peak
// windows, on-site TTL) is done in.
func NewVenueLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.DB.TimeZone)
}
