package queries

import (
	"context"
	"time"

	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/usecase/shared"
)

type CouponReadStore interface {
	ListLanding(ctx context.Context, now time.Time) ([]*shared.CouponSnapshot, error)
	ListAll(ctx context.Context) ([]*shared.CouponSnapshot, error)
}

type CouponQueries interface {
	// ListLanding returns the currently advertisable coupons for the public
	// landing page.
	ListLanding(ctx context.Context) ([]*shared.CouponSnapshot, error)
	// ListAll returns every coupon definition, for back-office use.
	ListAll(ctx context.Context) ([]*shared.CouponSnapshot, error)
}

type couponQueriesImpl struct {
	store CouponReadStore
	clock clock.Clock
}

func NewCouponQueries(store CouponReadStore, clk clock.Clock) CouponQueries {
	return &couponQueriesImpl{store: store, clock: clk}
}

func (q *couponQueriesImpl) ListLanding(ctx context.Context) ([]*shared.CouponSnapshot, error) {
	return q.store.ListLanding(ctx, q.clock.Now())
}

func (q *couponQueriesImpl) ListAll(ctx context.Context) ([]*shared.CouponSnapshot, error) {
	return q.store.ListAll(ctx)
}
