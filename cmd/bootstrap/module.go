package bootstrap

import (
	"leisure-booking-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	MQModule,
	GatewayModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
