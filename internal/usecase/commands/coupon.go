package commands

import (
	"context"
	"time"

	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/shared"
)

var ErrCouponNotFound = errs.New("coupon not found")

type ValidateCouponParams struct {
	Code  string
	Email string
	Items []HoldItem
}

type ValidateCouponResult struct {
	Code          string
	DiscountCents int64
}

type CouponCommands interface {
	// ValidateCoupon prices the prospective items the same way CreateHold
	// would and reports the discount the coupon yields. Read-only; usage is
	// only consumed when a hold is actually created.
	ValidateCoupon(ctx context.Context, params ValidateCouponParams) (*ValidateCouponResult, error)
}

type couponCommandsImpl struct {
	quoter
	clock clock.Clock
}

func NewCouponCommands(uow shared.UnitOfWork, clk clock.Clock, limits config.BookingConfig, loc *time.Location) CouponCommands {
	return &couponCommandsImpl{
		quoter: quoter{uow: uow, limits: limits, loc: loc},
		clock:  clk,
	}
}

func (c *couponCommandsImpl) ValidateCoupon(ctx context.Context, params ValidateCouponParams) (*ValidateCouponResult, error) {
	normalized := coupon.NormalizeCode(params.Code)
	if normalized == "" {
		return nil, ErrCouponNotFound
	}

	now := c.clock.Now()

	snap, err := c.uow.Reads().Settings(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	quotes, err := c.quoteItems(ctx, params.Items, order.PayOnline, now, snap)
	if err != nil {
		return nil, err
	}

	couponSnap, err := c.uow.Reads().CouponByCode(ctx, normalized)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponNotFound)
	}
	coup, err := couponSnap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrCouponInvalid)
	}

	items := make([]coupon.LineItem, len(quotes))
	for i, q := range quotes {
		items[i] = coupon.LineItem{ResourceType: q.res.Type(), AmountCents: q.amount}
	}
	eligible, err := coup.Validate(now, items)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponInvalid)
	}

	return &ValidateCouponResult{
		Code:          normalized,
		DiscountCents: coup.ComputeDiscount(eligible),
	}, nil
}
