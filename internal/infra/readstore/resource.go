package readstore

import (
	"context"

	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (s *ResourceReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*shared.ResourceSnapshot, error) {
	const query = `
		SELECT id, type, name, pricing_mode, price_cents, max_people
		FROM resources
		WHERE id = ANY($1)`

	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load resources", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*shared.ResourceSnapshot, len(ids))
	for rows.Next() {
		var snap shared.ResourceSnapshot
		var resType, mode string
		if err := rows.Scan(&snap.ID, &resType, &snap.Name, &mode, &snap.PriceCents, &snap.MaxPeople); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		snap.Type = resource.Type(resType)
		snap.PricingMode = resource.PricingMode(mode)
		result[snap.ID] = &snap
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}
	return result, nil
}
