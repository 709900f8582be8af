package components

import (
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewHoldCommands,
		commands.NewCheckoutCommands,
		commands.NewWebhookCommands,
		commands.NewCouponCommands,
		commands.NewSweepCommands,
		commands.NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewOrderQueries,
		queries.NewCouponQueries,
		queries.NewSettingsQueries,
	),
)
