package repository

import (
	"context"
	"hash/fnv"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"

	"github.com/google/uuid"
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

// resourceDateLockKey folds a (resource, date) partition into the 64-bit
// advisory lock keyspace. Collisions only cost parallelism, never
// correctness.
func resourceDateLockKey(resourceID uuid.UUID, date string) int64 {
	h := fnv.New64a()
	h.Write(resourceID[:])
	h.Write([]byte(date))
	return int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF)
}

// LockResourceDate takes a transaction-scoped advisory lock serializing all
// slot mutations for one (resource, date). Released automatically at
// commit/rollback.
func (r *SlotRepository) LockResourceDate(ctx context.Context, resourceID uuid.UUID, date string) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, resourceDateLockKey(resourceID, date))
	if err != nil {
		return infra.WrapRepoErr("failed to lock resource-date partition", err)
	}
	return nil
}

func (r *SlotRepository) HasOverlap(ctx context.Context, resourceID uuid.UUID, date string, startMin, endMin int, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM booking_slots
			WHERE resource_id = $1
			  AND slot_date = $2
			  AND start_min < $4
			  AND end_min > $3
			  AND (status = 'BOOKED' OR (status = 'HOLD' AND expires_at > $5))
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, resourceID, date, startMin, endMin, now).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check slot overlap", err)
	}
	return exists, nil
}

func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*booking.Slot) error {
	const query = `
		INSERT INTO booking_slots (id, order_id, resource_id, slot_date, start_min, end_min, people_count, amount_cents, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, s := range slots {
		_, err := r.db.Exec(ctx, query,
			s.ID(), s.OrderID(), s.ResourceID(),
			s.TimeRange().Date(), s.TimeRange().StartMin(), s.TimeRange().EndMin(),
			s.PeopleCount(), s.AmountCents(), s.Status().String(),
			s.ExpiresAt(), s.CreatedAt(), s.UpdatedAt(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create booking slot", err, pgErrKind(err))
		}
	}
	return nil
}

func (r *SlotRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*booking.Slot, error) {
	const query = `
		SELECT id, order_id, resource_id, to_char(slot_date, 'YYYY-MM-DD'), start_min, end_min,
		       people_count, amount_cents, status, COALESCE(expires_at, 'epoch'::timestamptz), created_at, updated_at
		FROM booking_slots
		WHERE order_id = $1
		ORDER BY slot_date, start_min`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slots by order", err)
	}
	defer rows.Close()

	var slots []*booking.Slot
	for rows.Next() {
		var (
			id, ordID, resID           uuid.UUID
			date                       string
			startMin, endMin, people   int
			amount                     int64
			status                     string
			expiresAt, created, updated time.Time
		)
		if err := rows.Scan(&id, &ordID, &resID, &date, &startMin, &endMin, &people, &amount, &status, &expiresAt, &created, &updated); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking slot", err)
		}
		tr, err := booking.NewTimeRange(date, startMin, endMin)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid time range in storage", err)
		}
		slots = append(slots, booking.ReconstructSlot(id, ordID, resID, tr, people, amount, booking.Status(status), expiresAt, created, updated))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking slots", err)
	}
	return slots, nil
}

func (r *SlotRepository) PromoteByOrderID(ctx context.Context, orderID uuid.UUID, now time.Time) (int64, error) {
	const query = `
		UPDATE booking_slots
		SET status = 'BOOKED', updated_at = $2
		WHERE order_id = $1 AND status = 'HOLD'`

	tag, err := r.db.Exec(ctx, query, orderID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to promote holds", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) CancelHoldsByOrderID(ctx context.Context, orderID uuid.UUID, now time.Time) (int64, error) {
	const query = `
		UPDATE booking_slots
		SET status = 'CANCELLED', updated_at = $2
		WHERE order_id = $1 AND status = 'HOLD'`

	tag, err := r.db.Exec(ctx, query, orderID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel holds", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) CancelAllByOrderID(ctx context.Context, orderID uuid.UUID, now time.Time) (int64, error) {
	const query = `
		UPDATE booking_slots
		SET status = 'CANCELLED', updated_at = $2
		WHERE order_id = $1 AND status <> 'CANCELLED'`

	tag, err := r.db.Exec(ctx, query, orderID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel order slots", err)
	}
	return tag.RowsAffected(), nil
}

// CancelExpired conditions on status = 'HOLD' so a promotion committing in
// the same instant wins; the sweeper simply affects zero rows for that order.
func (r *SlotRepository) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE booking_slots s
		SET status = 'CANCELLED', updated_at = $1
		WHERE s.status = 'HOLD'
		  AND s.expires_at <= $1
		  AND NOT EXISTS (
			SELECT 1 FROM payment_transactions pt
			WHERE pt.order_id = s.order_id AND pt.status = 'SUCCESS'
		  )`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel expired holds", err)
	}
	return tag.RowsAffected(), nil
}
