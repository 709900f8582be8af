package repository

import (
	"context"
	"encoding/json"

	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
)

type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(dbtx db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: dbtx}
}

// Save upserts the singleton settings row. New holds pick the values up on
// their next settings read; existing holds keep the TTL they were created
// with.
func (r *SettingsRepository) Save(ctx context.Context, snap settings.Snapshot) error {
	const query = `
		INSERT INTO app_settings (
			id, ttl_online_min, ttl_last_minute_min, ttl_peak_min,
			ttl_onsite_before_min, ttl_onsite_grace_min,
			peak_start_hour, peak_end_hour, last_minute_threshold_min,
			slot_interval_min, opening_hours, updated_at
		)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (id) DO UPDATE SET
			ttl_online_min = EXCLUDED.ttl_online_min,
			ttl_last_minute_min = EXCLUDED.ttl_last_minute_min,
			ttl_peak_min = EXCLUDED.ttl_peak_min,
			ttl_onsite_before_min = EXCLUDED.ttl_onsite_before_min,
			ttl_onsite_grace_min = EXCLUDED.ttl_onsite_grace_min,
			peak_start_hour = EXCLUDED.peak_start_hour,
			peak_end_hour = EXCLUDED.peak_end_hour,
			last_minute_threshold_min = EXCLUDED.last_minute_threshold_min,
			slot_interval_min = EXCLUDED.slot_interval_min,
			opening_hours = EXCLUDED.opening_hours,
			updated_at = now()`

	opening, err := json.Marshal(snap.OpeningHours)
	if err != nil {
		return infra.WrapRepoErr("failed to encode opening hours", err)
	}

	_, err = r.db.Exec(ctx, query,
		snap.HoldTTLOnlineMin, snap.HoldTTLLastMinuteMin, snap.HoldTTLPeakMin,
		snap.HoldTTLOnsiteBeforeMin, snap.HoldTTLOnsiteGraceMin,
		snap.PeakStartHour, snap.PeakEndHour, snap.LastMinuteThresholdMin,
		snap.SlotIntervalMin, opening,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save settings", err)
	}
	return nil
}
