package commands

import (
	"context"

	"github.com/google/uuid"
)

// RegisterSessionParams opens a payment session with the external gateway.
// SessionID is merchant-generated and is the correlation key for webhooks.
type RegisterSessionParams struct {
	SessionID   string
	AmountCents int64
	Currency    string
	Description string
	Email       string
}

type RegisterSessionResult struct {
	Token       string
	RedirectURL string
}

// Notification is the payload posted by the gateway to the webhook endpoint.
// Sign covers merchant id, pos id, session id, gateway order id, amount and
// currency; the handler rejects anything whose signature does not match.
type Notification struct {
	MerchantID  int64  `json:"merchantId"`
	PosID       int64  `json:"posId"`
	SessionID   string `json:"sessionId"`
	OrderID     int64  `json:"orderId"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Sign        string `json:"sign"`
}

type PaymentGateway interface {
	// RegisterSession is expected to bound its own HTTP timeout and retry
	// transient failures a small, fixed number of times.
	RegisterSession(ctx context.Context, p RegisterSessionParams) (*RegisterSessionResult, error)
	// VerifyNotificationSign fails closed: any mismatch is an error.
	VerifyNotificationSign(n Notification) error
	// VerifyTransaction confirms a successful payment with the gateway before
	// the order is promoted. Returns the raw verification response for audit.
	VerifyTransaction(ctx context.Context, sessionID string, gatewayOrderID, amountCents int64, currency string) ([]byte, error)
}

// EventPublisher fans booking outcomes out to interested collaborators
// (notification workers, admin dashboards). Delivery is best-effort; the
// database is the source of truth.
type EventPublisher interface {
	PublishOrderBooked(ctx context.Context, orderID uuid.UUID, orderNumber string) error
	PublishOrderCancelled(ctx context.Context, orderID uuid.UUID, orderNumber, reason string) error
}
