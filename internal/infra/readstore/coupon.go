package readstore

import (
	"context"
	"time"

	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/pkg/pgconv"
	"leisure-booking-api/internal/usecase/shared"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

const couponColumns = `id, code, type, value, eligible_types, valid_from, valid_to, max_uses, used_count, min_spend_cents, show_on_landing`

func scanCoupon(row interface{ Scan(dest ...any) error }) (*shared.CouponSnapshot, error) {
	var snap shared.CouponSnapshot
	var cType string
	var eligible []string
	if err := row.Scan(
		&snap.ID, &snap.Code, &cType, &snap.Value, &eligible,
		&snap.ValidFrom, &snap.ValidTo, &snap.MaxUses, &snap.UsedCount,
		&snap.MinSpendCents, &snap.ShowOnLanding,
	); err != nil {
		return nil, err
	}
	snap.Type = coupon.Type(cType)
	snap.EligibleTypes = make([]resource.Type, len(eligible))
	for i, t := range eligible {
		snap.EligibleTypes[i] = resource.Type(t)
	}
	return &snap, nil
}

func (s *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	snap, err := scanCoupon(s.db.QueryRow(ctx, query, code))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon", err)
	}
	return snap, nil
}

// ListLanding returns coupons flagged for the public landing page that are
// currently inside their validity window.
func (s *CouponReadStore) ListLanding(ctx context.Context, now time.Time) ([]*shared.CouponSnapshot, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE show_on_landing = TRUE
		  AND (valid_from IS NULL OR valid_from <= $1)
		  AND (valid_to IS NULL OR valid_to >= $1)
		  AND (max_uses IS NULL OR used_count < max_uses)
		ORDER BY code`

	return s.list(ctx, query, now)
}

func (s *CouponReadStore) ListAll(ctx context.Context) ([]*shared.CouponSnapshot, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY code`
	return s.list(ctx, query)
}

func (s *CouponReadStore) list(ctx context.Context, query string, args ...any) ([]*shared.CouponSnapshot, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	var coupons []*shared.CouponSnapshot
	for rows.Next() {
		snap, err := scanCoupon(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon", err)
		}
		coupons = append(coupons, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupons", err)
	}
	return coupons, nil
}
