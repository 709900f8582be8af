package readstore

import (
	"context"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// AvailabilityReadStore feeds the day-grid resolver straight from the pool;
// availability reads never join a write transaction.
type AvailabilityReadStore struct {
	db       db.DBTX
	settings *SettingsReadStore
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx, settings: NewSettingsReadStore(dbtx)}
}

func (s *AvailabilityReadStore) ListResources(ctx context.Context, resourceType *resource.Type, resourceID *uuid.UUID) ([]queries.ResourceRow, error) {
	const query = `
		SELECT id, type, name
		FROM resources
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::uuid IS NULL OR id = $2)
		ORDER BY type, name`

	var typeArg *string
	if resourceType != nil {
		v := resourceType.String()
		typeArg = &v
	}

	rows, err := s.db.Query(ctx, query, typeArg, resourceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var result []queries.ResourceRow
	for rows.Next() {
		var row queries.ResourceRow
		var resType string
		if err := rows.Scan(&row.ID, &resType, &row.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		row.Type = resource.Type(resType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource rows", err)
	}
	return result, nil
}

func (s *AvailabilityReadStore) ListSlotsForDate(ctx context.Context, date string, resourceIDs []uuid.UUID) ([]queries.SlotRow, error) {
	const query = `
		SELECT resource_id, start_min, end_min, status, COALESCE(expires_at, 'epoch'::timestamptz)
		FROM booking_slots
		WHERE slot_date = $1
		  AND resource_id = ANY($2)
		  AND status <> 'CANCELLED'`

	rows, err := s.db.Query(ctx, query, date, resourceIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var result []queries.SlotRow
	for rows.Next() {
		var row queries.SlotRow
		var status string
		var expiresAt time.Time
		if err := rows.Scan(&row.ResourceID, &row.StartMin, &row.EndMin, &status, &expiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		row.Status = booking.Status(status)
		row.ExpiresAt = expiresAt
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}
	return result, nil
}

func (s *AvailabilityReadStore) Settings(ctx context.Context) (settings.Snapshot, error) {
	return s.settings.Load(ctx)
}
