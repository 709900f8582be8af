package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"leisure-booking-api/internal/domain/payment"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature    = errs.New("webhook signature mismatch")
	ErrTransactionNotFound = errs.New("payment transaction not found")
	ErrUnknownStatus       = errs.New("unknown payment status")
	ErrVerificationFailed  = errs.New("gateway verification failed")
)

type WebhookCommands interface {
	HandleNotification(ctx context.Context, n Notification) error
}

type webhookCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	events  EventPublisher
	clock   clock.Clock
}

func NewWebhookCommands(uow shared.UnitOfWork, gateway PaymentGateway, events EventPublisher, clk clock.Clock) WebhookCommands {
	return &webhookCommandsImpl{
		uow:     uow,
		gateway: gateway,
		events:  events,
		clock:   clk,
	}
}

// HandleNotification reconciles a gateway callback into order state.
// Signature verification fails closed; replays and out-of-order terminal
// statuses are absorbed by the transaction's append-only history, so the
// handler can be called any number of times with the same payload.
func (w *webhookCommandsImpl) HandleNotification(ctx context.Context, n Notification) error {
	if err := w.gateway.VerifyNotificationSign(n); err != nil {
		return errs.Mark(err, ErrInvalidSignature)
	}

	status := payment.Status(n.Status)
	switch status {
	case payment.StatusSuccess, payment.StatusFailed, payment.StatusTimedOut, payment.StatusAbandoned:
	default:
		return ErrUnknownStatus
	}

	var verifyResponse []byte
	if status == payment.StatusSuccess {
		raw, err := w.gateway.VerifyTransaction(ctx, n.SessionID, n.OrderID, n.AmountCents, n.Currency)
		if err != nil {
			// Returning an error keeps the response non-2xx so the gateway
			// redelivers; the order stays HOLD until verification succeeds.
			return errs.Mark(err, ErrVerificationFailed)
		}
		verifyResponse = raw
	}

	now := w.clock.Now()
	var (
		orderID uuid.UUID
		applied bool
	)

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		tr, err := tx.Payments().FindBySessionIDForUpdate(ctx, n.SessionID)
		if err != nil {
			return errs.Mark(err, ErrTransactionNotFound)
		}
		orderID = tr.OrderID()

		applied, err = tr.RecordStatus(status, now)
		if err != nil {
			return err
		}
		if !applied {
			// Replay of a recorded terminal status, or a late terminal
			// status after SUCCESS. Durable state already reflects the
			// authoritative outcome; acknowledge without side effects.
			return nil
		}

		if status == payment.StatusSuccess {
			tr.SetGatewayOrderID(n.OrderID)
			tr.SetVerifyResponse(verifyResponse)
		}
		if err := tx.Payments().Update(ctx, tr); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		topic := "order_payment_failed"
		if status == payment.StatusSuccess {
			if _, err := tx.Slots().PromoteByOrderID(ctx, orderID, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			topic = "order_booked"
		} else {
			if _, err := tx.Slots().CancelHoldsByOrderID(ctx, orderID, now); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		payload, err := json.Marshal(map[string]any{
			"order_id":       orderID,
			"session_id":     n.SessionID,
			"payment_status": status.String(),
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return tx.Notifications().CreateJob(ctx, "email", topic, payload, now)
	})
	if err != nil {
		return err
	}

	if applied {
		w.publishOutcome(ctx, orderID, status)
	}
	return nil
}

// publishOutcome emits the booking outcome after commit. The event stream is
// best-effort; a publish failure is logged, never surfaced to the gateway.
func (w *webhookCommandsImpl) publishOutcome(ctx context.Context, orderID uuid.UUID, status payment.Status) {
	if w.events == nil {
		return
	}

	ord, err := w.uow.Reads().OrderByID(ctx, orderID)
	if err != nil {
		slog.Warn("failed to load order for event publish", "order_id", orderID, "error", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if status == payment.StatusSuccess {
		err = w.events.PublishOrderBooked(publishCtx, orderID, ord.Number)
	} else {
		err = w.events.PublishOrderCancelled(publishCtx, orderID, ord.Number, status.String())
	}
	if err != nil {
		slog.Warn("failed to publish booking event", "order_id", orderID, "status", status, "error", err)
	}
}
