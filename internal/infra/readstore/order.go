package readstore

import (
	"context"
	"fmt"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/pkg/pgconv"
	"leisure-booking-api/internal/usecase/queries"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (s *OrderReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	const query = `
		SELECT id, order_number, email, payment_method, coupon_code, discount_cents, total_cents, created_at
		FROM orders
		WHERE id = $1`

	var snap shared.OrderSnapshot
	var method string
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.Number, &snap.Email, &method,
		&snap.CouponCode, &snap.DiscountCents, &snap.TotalCents, &snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	snap.PaymentMethod = order.PaymentMethod(method)
	return &snap, nil
}

// FindOrderView assembles the customer-facing order projection. The order
// status is derived rather than stored: PAID when a successful transaction
// exists, CANCELLED when no slot blocks anymore, PENDING otherwise.
func (s *OrderReadStore) FindOrderView(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const orderQuery = `
		SELECT o.id, o.order_number, o.email, o.first_name, o.last_name, o.phone,
		       o.payment_method, o.coupon_code, o.discount_cents, o.total_cents, o.created_at,
		       EXISTS (
			SELECT 1 FROM payment_transactions pt
			WHERE pt.order_id = o.id AND pt.status = 'SUCCESS'
		       )
		FROM orders o
		WHERE o.id = $1`

	var view queries.OrderView
	var paid bool
	err := s.db.QueryRow(ctx, orderQuery, id).Scan(
		&view.ID, &view.Number, &view.Email, &view.FirstName, &view.LastName, &view.Phone,
		&view.PaymentMethod, &view.CouponCode, &view.DiscountCents, &view.TotalCents,
		&view.CreatedAt, &paid,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order view", err)
	}

	const slotsQuery = `
		SELECT s.id, s.resource_id, r.name, to_char(s.slot_date, 'YYYY-MM-DD'),
		       s.start_min, s.end_min, s.people_count, s.amount_cents, s.status, s.expires_at
		FROM booking_slots s
		JOIN resources r ON r.id = s.resource_id
		WHERE s.order_id = $1
		ORDER BY s.slot_date, s.start_min`

	rows, err := s.db.Query(ctx, slotsQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order slots", err)
	}
	defer rows.Close()

	allCancelled := true
	for rows.Next() {
		var sv queries.OrderSlotView
		var startMin, endMin int
		var expiresAt *time.Time
		if err := rows.Scan(&sv.SlotID, &sv.ResourceID, &sv.ResourceName, &sv.Date,
			&startMin, &endMin, &sv.PeopleCount, &sv.AmountCents, &sv.Status, &expiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order slot", err)
		}
		sv.Start = minutesLabel(startMin)
		sv.End = minutesLabel(endMin)
		sv.ExpiresAt = expiresAt
		if sv.Status != string(booking.StatusCancelled) {
			allCancelled = false
		}
		view.Slots = append(view.Slots, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order slots", err)
	}

	switch {
	case paid:
		view.Status = "PAID"
	case len(view.Slots) > 0 && allCancelled:
		view.Status = "CANCELLED"
	default:
		view.Status = "PENDING"
	}
	return &view, nil
}

func minutesLabel(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
