package queries

import (
	"context"
	"time"

	"leisure-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderViewNotFound = errs.New("order not found")

type OrderSlotView struct {
	SlotID       uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	Date         string
	Start        string
	End          string
	PeopleCount  int
	AmountCents  int64
	Status       string
	ExpiresAt    *time.Time
}

type OrderView struct {
	ID            uuid.UUID
	Number        string
	Email         string
	FirstName     string
	LastName      string
	Phone         *string
	PaymentMethod string
	CouponCode    *string
	DiscountCents int64
	TotalCents    int64
	// Status is derived: PAID when a SUCCESS transaction exists, CANCELLED
	// when every slot is cancelled, PENDING otherwise.
	Status    string
	Slots     []OrderSlotView
	CreatedAt time.Time
}

type OrderReadStore interface {
	FindOrderView(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindOrderView(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrOrderViewNotFound)
	}
	return view, nil
}
