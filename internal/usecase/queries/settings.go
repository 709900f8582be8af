package queries

import (
	"context"

	"leisure-booking-api/internal/domain/settings"
)

type SettingsReadStore interface {
	Load(ctx context.Context) (settings.Snapshot, error)
}

type SettingsQueries interface {
	Get(ctx context.Context) (settings.Snapshot, error)
}

type settingsQueriesImpl struct {
	store SettingsReadStore
}

func NewSettingsQueries(store SettingsReadStore) SettingsQueries {
	return &settingsQueriesImpl{store: store}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (settings.Snapshot, error) {
	return q.store.Load(ctx)
}
