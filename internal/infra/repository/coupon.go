package repository

import (
	"context"

	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	const query = `
		INSERT INTO coupons (id, code, type, value, eligible_types, valid_from, valid_to, max_uses, used_count, min_spend_cents, show_on_landing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	eligible := make([]string, len(c.EligibleTypes()))
	for i, t := range c.EligibleTypes() {
		eligible[i] = t.String()
	}

	_, err := r.db.Exec(ctx, query,
		c.ID(), c.Code(), c.Type().String(), c.Value(), eligible,
		c.ValidFrom(), c.ValidTo(), c.MaxUses(), c.UsedCount(),
		c.MinSpendCents(), c.ShowOnLanding(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create coupon", err, pgErrKind(err))
	}
	return nil
}

// IncrementUsage consumes one use, guarded against exceeding max_uses under
// concurrency by the conditional WHERE.
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) error {
	const query = `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = now()
		WHERE code = $1
		  AND (max_uses IS NULL OR used_count < max_uses)`

	tag, err := r.db.Exec(ctx, query, code)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon has no remaining uses", nil, infra.KindConflict)
	}
	return nil
}
