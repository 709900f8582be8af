package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid payment status")

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
}

// Transaction tracks one attempt to pay an order through the external
// gateway. A transaction is created when checkout opens a gateway session and
// is only ever updated by webhook/verification handling; rows are never
// deleted. An order may accumulate several transactions across retries but at
// most one may reach SUCCESS.
type Transaction struct {
	id             uuid.UUID
	orderID        uuid.UUID
	sessionID      string
	gatewayOrderID *int64
	amountCents    int64
	currency       string
	status         Status
	history        []StatusChange
	verifyResponse []byte
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTransaction(orderID uuid.UUID, sessionID string, amountCents int64, currency string, now time.Time) *Transaction {
	return &Transaction{
		id:          uuid.New(),
		orderID:     orderID,
		sessionID:   sessionID,
		amountCents: amountCents,
		currency:    currency,
		status:      StatusPending,
		history:     []StatusChange{{Status: StatusPending, At: now}},
		createdAt:   now,
		updatedAt:   now,
	}
}

func ReconstructTransaction(
	id, orderID uuid.UUID,
	sessionID string,
	gatewayOrderID *int64,
	amountCents int64,
	currency string,
	status Status,
	history []StatusChange,
	verifyResponse []byte,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:             id,
		orderID:        orderID,
		sessionID:      sessionID,
		gatewayOrderID: gatewayOrderID,
		amountCents:    amountCents,
		currency:       currency,
		status:         status,
		history:        history,
		verifyResponse: verifyResponse,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (t *Transaction) ID() uuid.UUID           { return t.id }
func (t *Transaction) OrderID() uuid.UUID      { return t.orderID }
func (t *Transaction) SessionID() string       { return t.sessionID }
func (t *Transaction) GatewayOrderID() *int64  { return t.gatewayOrderID }
func (t *Transaction) AmountCents() int64      { return t.amountCents }
func (t *Transaction) Currency() string        { return t.currency }
func (t *Transaction) Status() Status          { return t.status }
func (t *Transaction) History() []StatusChange { return t.history }
func (t *Transaction) VerifyResponse() []byte  { return t.verifyResponse }
func (t *Transaction) CreatedAt() time.Time    { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time    { return t.updatedAt }

func (t *Transaction) SetGatewayOrderID(id int64) {
	t.gatewayOrderID = &id
}

func (t *Transaction) SetVerifyResponse(raw []byte) {
	t.verifyResponse = raw
}

// HasRecorded reports whether the given terminal status already appears in
// the history. Webhook replays short-circuit on this.
func (t *Transaction) HasRecorded(status Status) bool {
	for _, change := range t.history {
		if change.Status == status {
			return true
		}
	}
	return false
}

// RecordStatus applies an incoming gateway status. It returns true when the
// transition was applied and false when it was suppressed: either a replay of
// an already-recorded terminal status, or an out-of-order terminal status
// arriving after SUCCESS. SUCCESS is never overwritten.
func (t *Transaction) RecordStatus(status Status, now time.Time) (bool, error) {
	if !status.IsValid() {
		return false, ErrInvalidStatus
	}
	if status.IsTerminal() && t.HasRecorded(status) {
		return false, nil
	}
	if t.status == StatusSuccess && status != StatusRefunded {
		return false, nil
	}
	t.history = append(t.history, StatusChange{Status: status, At: now})
	t.status = status
	t.updatedAt = now
	return true, nil
}
