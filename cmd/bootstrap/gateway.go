package bootstrap

import (
	"leisure-booking-api/internal/infra/gateway"
	"leisure-booking-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			gateway.NewClient,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
