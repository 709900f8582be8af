package components

import (
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/infra/readstore"
	repo_impl "leisure-booking-api/internal/infra/repository"
	"leisure-booking-api/internal/infra/uow"
	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repo_impl.NewSettingsRepository,
			fx.As(new(commands.SettingsWriter)),
		),
		fx.Annotate(
			repo_impl.NewCouponRepository,
			fx.As(new(commands.CouponWriter)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
		fx.Annotate(
			readstore.NewSettingsReadStore,
			fx.As(new(queries.SettingsReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
