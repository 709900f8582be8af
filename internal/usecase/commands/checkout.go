package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/payment"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrAlreadyPaid   = errs.New("order is already paid")
	ErrHoldExpired   = errs.New("order holds have expired")
	ErrGateway       = errs.New("payment gateway error")
)

type CheckoutResult struct {
	SessionID   string
	RedirectURL string
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, orderID uuid.UUID) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
	cfg     config.GatewayConfig
}

func NewCheckoutCommands(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock, cfg config.GatewayConfig) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clk,
		cfg:     cfg,
	}
}

// Checkout opens a gateway session for an order whose holds are still live.
// The holds are deliberately not extended: payment must complete inside the
// original TTL or the sweeper reclaims the slots (a slow payer loses the
// hold).
func (c *checkoutCommandsImpl) Checkout(ctx context.Context, orderID uuid.UUID) (*CheckoutResult, error) {
	now := c.clock.Now()

	ord, err := c.uow.Reads().OrderByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrOrderNotFound)
	}

	sessionID := uuid.NewString()
	tr := payment.NewTransaction(orderID, sessionID, ord.TotalCents, c.cfg.Currency, now)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		paid, err := tx.Payments().HasSuccessForOrder(ctx, orderID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if paid {
			return ErrAlreadyPaid
		}

		slots, err := tx.Slots().FindByOrderID(ctx, orderID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(slots) == 0 {
			return ErrOrderNotFound
		}

		if holdsLapsed(slots, now) {
			return ErrHoldExpired
		}

		return tx.Payments().Create(ctx, tr)
	})
	if errors.Is(err, ErrHoldExpired) {
		// Release immediately instead of waiting for the sweeper so the caller
		// gets a clean EXPIRED and the capacity frees up now. A separate
		// transaction, since the aborted one rolled back.
		c.releaseHolds(ctx, orderID, now)
		return nil, ErrHoldExpired
	}
	if err != nil {
		return nil, err
	}

	result, err := c.gateway.RegisterSession(ctx, RegisterSessionParams{
		SessionID:   sessionID,
		AmountCents: ord.TotalCents,
		Currency:    c.cfg.Currency,
		Description: fmt.Sprintf("Booking %s", ord.Number),
		Email:       ord.Email,
	})
	if err != nil {
		c.markSessionFailed(ctx, sessionID)
		return nil, errs.Mark(err, ErrGateway)
	}

	return &CheckoutResult{
		SessionID:   sessionID,
		RedirectURL: result.RedirectURL,
	}, nil
}

// holdsLapsed reports whether the order no longer has a live hold: every slot
// is cancelled, or still marked HOLD but past its expiry.
func holdsLapsed(slots []*booking.Slot, now time.Time) bool {
	for _, s := range slots {
		if s.Status() == booking.StatusHold && !s.HasExpired(now) {
			return false
		}
		if s.Status() == booking.StatusBooked {
			return false
		}
	}
	return true
}

func (c *checkoutCommandsImpl) releaseHolds(ctx context.Context, orderID uuid.UUID, now time.Time) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().CancelHoldsByOrderID(ctx, orderID, now)
		return err
	})
	if err != nil {
		slog.Warn("failed to release expired holds", "order_id", orderID, "error", err)
	}
}

func (c *checkoutCommandsImpl) markSessionFailed(ctx context.Context, sessionID string) {
	_ = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		tr, err := tx.Payments().FindBySessionIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		applied, err := tr.RecordStatus(payment.StatusFailed, c.clock.Now())
		if err != nil || !applied {
			return err
		}
		return tx.Payments().Update(ctx, tr)
	})
}
