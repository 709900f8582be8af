package commands

import (
	"context"
	"encoding/json"
	"time"

	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidSettings = errs.New("invalid settings values")
	ErrInvalidCoupon   = errs.New("invalid coupon definition")
	ErrNothingToCancel = errs.New("order has no active slots")
)

// SettingsWriter persists the singleton settings row.
type SettingsWriter interface {
	Save(ctx context.Context, snap settings.Snapshot) error
}

// CouponWriter persists coupon definitions created by back-office staff.
type CouponWriter interface {
	Create(ctx context.Context, c *coupon.Coupon) error
}

type CreateCouponParams struct {
	Code          string
	Type          coupon.Type
	Value         int64
	EligibleTypes []resource.Type
	ValidFrom     *time.Time
	ValidTo       *time.Time
	MaxUses       *int32
	MinSpendCents *int64
	ShowOnLanding bool
}

type AdminCommands interface {
	UpdateSettings(ctx context.Context, snap settings.Snapshot) error
	CreateCoupon(ctx context.Context, params CreateCouponParams) (uuid.UUID, error)
	// CancelOrder converges every slot of the order to CANCELLED, booked ones
	// included. Money already captured is reconciled out of band.
	CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) error
}

type adminCommandsImpl struct {
	uow      shared.UnitOfWork
	settings SettingsWriter
	coupons  CouponWriter
	events   EventPublisher
	clock    clock.Clock
}

func NewAdminCommands(
	uow shared.UnitOfWork,
	settingsWriter SettingsWriter,
	couponWriter CouponWriter,
	events EventPublisher,
	clk clock.Clock,
) AdminCommands {
	return &adminCommandsImpl{
		uow:      uow,
		settings: settingsWriter,
		coupons:  couponWriter,
		events:   events,
		clock:    clk,
	}
}

func (a *adminCommandsImpl) UpdateSettings(ctx context.Context, snap settings.Snapshot) error {
	if err := validateSettings(snap); err != nil {
		return errs.Mark(err, ErrInvalidSettings)
	}
	if err := a.settings.Save(ctx, snap); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func validateSettings(s settings.Snapshot) error {
	positives := []int{
		s.HoldTTLOnlineMin, s.HoldTTLLastMinuteMin, s.HoldTTLPeakMin,
		s.HoldTTLOnsiteBeforeMin, s.HoldTTLOnsiteGraceMin,
		s.LastMinuteThresholdMin, s.SlotIntervalMin,
	}
	for _, v := range positives {
		if v <= 0 {
			return errs.New("ttl and interval values must be positive")
		}
	}
	if s.PeakStartHour < 0 || s.PeakEndHour > 24 || s.PeakStartHour >= s.PeakEndHour {
		return errs.New("peak window is inverted")
	}
	for _, h := range s.OpeningHours {
		if h.OpenHour < 0 || h.CloseHour > 24 || h.OpenHour >= h.CloseHour {
			return errs.New("opening hours are inverted")
		}
	}
	return nil
}

func (a *adminCommandsImpl) CreateCoupon(ctx context.Context, params CreateCouponParams) (uuid.UUID, error) {
	code := coupon.NormalizeCode(params.Code)
	if code == "" {
		return uuid.Nil, ErrInvalidCoupon
	}

	c, err := coupon.NewCoupon(
		uuid.New(), code, params.Type, params.Value, params.EligibleTypes,
		params.ValidFrom, params.ValidTo, params.MaxUses, 0, params.MinSpendCents,
		params.ShowOnLanding,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidCoupon)
	}

	if err := a.coupons.Create(ctx, c); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return c.ID(), nil
}

func (a *adminCommandsImpl) CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) error {
	now := a.clock.Now()

	ord, err := a.uow.Reads().OrderByID(ctx, orderID)
	if err != nil {
		return errs.Mark(err, ErrOrderNotFound)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		affected, err := tx.Slots().CancelAllByOrderID(ctx, orderID, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrNothingToCancel
		}

		payload, err := json.Marshal(map[string]any{
			"order_id":     orderID,
			"order_number": ord.Number,
			"reason":       reason,
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return tx.Notifications().CreateJob(ctx, "email", "order_cancelled", payload, now)
	})
	if err != nil {
		return err
	}

	if a.events != nil {
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = a.events.PublishOrderCancelled(publishCtx, orderID, ord.Number, reason)
	}
	return nil
}
