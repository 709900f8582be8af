package components

import (
	"leisure-booking-api/internal/handler"
	"leisure-booking-api/internal/handler/api"
	"leisure-booking-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewWebhookHandler,
		api.NewCouponHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
