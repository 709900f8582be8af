package readstore

import (
	"context"
	"encoding/json"

	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/pkg/pgconv"
)

type SettingsReadStore struct {
	db db.DBTX
}

func NewSettingsReadStore(dbtx db.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: dbtx}
}

// Load fetches the singleton settings row. A missing row falls back to the
// compiled-in defaults so a fresh database still serves requests.
func (s *SettingsReadStore) Load(ctx context.Context) (settings.Snapshot, error) {
	const query = `
		SELECT ttl_online_min, ttl_last_minute_min, ttl_peak_min,
		       ttl_onsite_before_min, ttl_onsite_grace_min,
		       peak_start_hour, peak_end_hour, last_minute_threshold_min,
		       slot_interval_min, opening_hours
		FROM app_settings
		WHERE id = 1`

	var snap settings.Snapshot
	var openingRaw []byte
	err := s.db.QueryRow(ctx, query).Scan(
		&snap.HoldTTLOnlineMin, &snap.HoldTTLLastMinuteMin, &snap.HoldTTLPeakMin,
		&snap.HoldTTLOnsiteBeforeMin, &snap.HoldTTLOnsiteGraceMin,
		&snap.PeakStartHour, &snap.PeakEndHour, &snap.LastMinuteThresholdMin,
		&snap.SlotIntervalMin, &openingRaw,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return settings.Defaults(), nil
		}
		return settings.Snapshot{}, infra.WrapRepoErr("failed to load settings", err)
	}

	if err := json.Unmarshal(openingRaw, &snap.OpeningHours); err != nil {
		return settings.Snapshot{}, infra.WrapRepoErr("failed to decode opening hours", err)
	}
	return snap, nil
}
