package bootstrap

import (
	"context"

	"leisure-booking-api/internal/infra/mq"
	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		fx.Annotate(
			NewPublisher,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.MQConfig) *mq.Publisher {
	publisher := mq.NewPublisher(cfg)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher
}
