package repository

import (
	"context"
	"time"

	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

// CreateJob enqueues an outbox row committed atomically with the business
// change that caused it. A separate dispatcher drains the table.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, uuid.New(), kind, topic, payload, runAt, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err, pgErrKind(err))
	}
	return nil
}
