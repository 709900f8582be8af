package repository

import (
	"context"
	"encoding/json"
	"time"

	"leisure-booking-api/internal/domain/payment"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, t *payment.Transaction) error {
	const query = `
		INSERT INTO payment_transactions (id, order_id, session_id, gateway_order_id, amount_cents, currency, status, status_history, verify_response, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	history, err := json.Marshal(t.History())
	if err != nil {
		return infra.WrapRepoErr("failed to encode status history", err)
	}

	_, err = r.db.Exec(ctx, query,
		t.ID(), t.OrderID(), t.SessionID(), t.GatewayOrderID(),
		t.AmountCents(), t.Currency(), t.Status().String(),
		history, t.VerifyResponse(),
		t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment transaction", err, pgErrKind(err))
	}
	return nil
}

func (r *PaymentRepository) FindBySessionIDForUpdate(ctx context.Context, sessionID string) (*payment.Transaction, error) {
	const query = `
		SELECT id, order_id, session_id, gateway_order_id, amount_cents, currency, status, status_history, verify_response, created_at, updated_at
		FROM payment_transactions
		WHERE session_id = $1
		FOR UPDATE`

	var (
		id, orderID            uuid.UUID
		sessID, currency       string
		gatewayOrderID         *int64
		amount                 int64
		status                 string
		historyRaw, verifyResp []byte
		created, updated       time.Time
	)
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&id, &orderID, &sessID, &gatewayOrderID, &amount, &currency,
		&status, &historyRaw, &verifyResp, &created, &updated,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment transaction", err)
	}

	var history []payment.StatusChange
	if len(historyRaw) > 0 {
		if err := json.Unmarshal(historyRaw, &history); err != nil {
			return nil, infra.WrapRepoErr("failed to decode status history", err)
		}
	}

	return payment.ReconstructTransaction(
		id, orderID, sessID, gatewayOrderID, amount, currency,
		payment.Status(status), history, verifyResp, created, updated,
	), nil
}

func (r *PaymentRepository) Update(ctx context.Context, t *payment.Transaction) error {
	const query = `
		UPDATE payment_transactions
		SET gateway_order_id = $2, status = $3, status_history = $4, verify_response = $5, updated_at = $6
		WHERE id = $1`

	history, err := json.Marshal(t.History())
	if err != nil {
		return infra.WrapRepoErr("failed to encode status history", err)
	}

	tag, err := r.db.Exec(ctx, query,
		t.ID(), t.GatewayOrderID(), t.Status().String(),
		history, t.VerifyResponse(), t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment transaction", err, pgErrKind(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment transaction not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentRepository) HasSuccessForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM payment_transactions
			WHERE order_id = $1 AND status = 'SUCCESS'
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check successful payment", err)
	}
	return exists, nil
}
