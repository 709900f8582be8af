package commands

import (
	"context"

	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/shared"
)

type SweepCommands interface {
	// SweepExpiredHolds reclaims HOLD slots whose expiry has passed and whose
	// order has no successful payment, returning the number reclaimed.
	SweepExpiredHolds(ctx context.Context) (int64, error)
}

type sweepCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSweepCommands(uow shared.UnitOfWork, clk clock.Clock) SweepCommands {
	return &sweepCommandsImpl{uow: uow, clock: clk}
}

func (s *sweepCommandsImpl) SweepExpiredHolds(ctx context.Context) (int64, error) {
	now := s.clock.Now()

	var reclaimed int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Slots().CancelExpired(ctx, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		reclaimed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reclaimed, nil
}
