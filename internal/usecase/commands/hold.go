package commands

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotConflict            = errs.New("requested slot overlaps an existing reservation")
	ErrInvalidResource         = errs.New("unknown or invalid resource")
	ErrInvalidTimeFormat       = errs.New("invalid date or time format")
	ErrCapacityExceeded        = errs.New("people count exceeds capacity")
	ErrCouponInvalid           = errs.New("coupon is not applicable")
	ErrInvalidCustomer         = errs.New("invalid customer data")
	ErrTooManyItems            = errs.New("too many items in one hold request")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type HoldItem struct {
	ResourceID  uuid.UUID
	Date        string
	Start       string
	DurationMin int
	PeopleCount int
}

type CustomerParams struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
}

type CreateHoldParams struct {
	Items         []HoldItem
	Customer      CustomerParams
	CouponCode    *string
	PaymentMethod order.PaymentMethod
}

type ReservedSlot struct {
	SlotID       uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	Date         string
	Start        string
	End          string
	AmountCents  int64
	ExpiresAt    time.Time
}

type CreateHoldResult struct {
	OrderID       uuid.UUID
	OrderNumber   string
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
	Slots         []ReservedSlot
}

type HoldCommands interface {
	CreateHold(ctx context.Context, params CreateHoldParams) (*CreateHoldResult, error)
}

// quoter validates and prices request items; it is shared between hold
// creation and coupon validation so both see identical amounts.
type quoter struct {
	uow    shared.UnitOfWork
	limits config.BookingConfig
	loc    *time.Location
}

type holdCommandsImpl struct {
	quoter
	clock clock.Clock
}

func NewHoldCommands(uow shared.UnitOfWork, clk clock.Clock, limits config.BookingConfig, loc *time.Location) HoldCommands {
	return &holdCommandsImpl{
		quoter: quoter{uow: uow, limits: limits, loc: loc},
		clock:  clk,
	}
}

// itemQuote is one validated, priced request item.
type itemQuote struct {
	item      HoldItem
	res       *resource.Resource
	timeRange booking.TimeRange
	amount    int64
	ttlMin    int
}

func (h *holdCommandsImpl) CreateHold(ctx context.Context, params CreateHoldParams) (*CreateHoldResult, error) {
	if len(params.Items) == 0 || len(params.Items) > h.limits.MaxItems {
		return nil, ErrTooManyItems
	}

	now := h.clock.Now()
	snap, err := h.uow.Reads().Settings(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	quotes, err := h.quoteItems(ctx, params.Items, params.PaymentMethod, now, snap)
	if err != nil {
		return nil, err
	}

	// Items inside one batch must not collide with each other either;
	// checking here keeps the conflict out of the transaction entirely.
	for i := range quotes {
		for j := i + 1; j < len(quotes); j++ {
			if quotes[i].item.ResourceID == quotes[j].item.ResourceID &&
				quotes[i].timeRange.Overlaps(quotes[j].timeRange) {
				return nil, ErrSlotConflict
			}
		}
	}

	var subtotal int64
	for _, q := range quotes {
		subtotal += q.amount
	}

	discount, couponCode, err := h.applyCoupon(ctx, params.CouponCode, quotes, now)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(params.Customer.Email, params.Customer.FirstName, params.Customer.LastName, params.Customer.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCustomer)
	}

	ord, err := order.NewOrder(customer, params.PaymentMethod, couponCode, subtotal, discount, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCustomer)
	}

	slots := make([]*booking.Slot, len(quotes))
	for i, q := range quotes {
		expiresAt := now.Add(time.Duration(q.ttlMin) * time.Minute)
		slots[i] = booking.NewHold(ord.ID(), q.item.ResourceID, q.timeRange, q.item.PeopleCount, q.amount, now, expiresAt)
	}

	if err := h.reserveInTx(ctx, ord, slots, couponCode, now); err != nil {
		return nil, err
	}

	return buildHoldResult(ord, slots, quotes, subtotal, discount), nil
}

func (h *quoter) quoteItems(
	ctx context.Context,
	items []HoldItem,
	method order.PaymentMethod,
	now time.Time,
	snap settings.Snapshot,
) ([]itemQuote, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ResourceID]; !ok {
			seen[item.ResourceID] = struct{}{}
			ids = append(ids, item.ResourceID)
		}
	}

	resources, err := h.uow.Reads().ResourcesByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	quotes := make([]itemQuote, 0, len(items))
	for _, item := range items {
		snapRes, ok := resources[item.ResourceID]
		if !ok {
			return nil, ErrInvalidResource
		}
		res, err := snapRes.ToDomain()
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidResource)
		}

		if item.DurationMin > h.limits.MaxDurationMin {
			return nil, ErrInvalidTimeFormat
		}
		tr, err := booking.ParseTimeRange(item.Date, item.Start, item.DurationMin)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidTimeFormat)
		}
		if err := tr.ValidateGrid(snap.SlotIntervalMin); err != nil {
			return nil, errs.Mark(err, ErrInvalidTimeFormat)
		}

		people := item.PeopleCount
		if people == 0 {
			people = 1
		}
		if people > h.limits.MaxPeople {
			return nil, ErrCapacityExceeded
		}
		if err := res.ValidatePeopleCount(people); err != nil {
			return nil, errs.Mark(err, ErrCapacityExceeded)
		}

		item.PeopleCount = people
		quotes = append(quotes, itemQuote{
			item:      item,
			res:       res,
			timeRange: tr,
			amount:    res.PriceFor(tr.DurationMin(), people),
			ttlMin:    settings.HoldTTL(method, now, tr.StartAt(h.loc), snap),
		})
	}
	return quotes, nil
}

func (h *holdCommandsImpl) applyCoupon(
	ctx context.Context,
	code *string,
	quotes []itemQuote,
	now time.Time,
) (int64, *string, error) {
	if code == nil {
		return 0, nil, nil
	}
	normalized := coupon.NormalizeCode(*code)
	if normalized == "" {
		return 0, nil, nil
	}

	snap, err := h.uow.Reads().CouponByCode(ctx, normalized)
	if err != nil {
		return 0, nil, errs.Mark(err, ErrCouponInvalid)
	}
	coup, err := snap.ToDomain()
	if err != nil {
		return 0, nil, errs.Mark(err, ErrCouponInvalid)
	}

	items := make([]coupon.LineItem, len(quotes))
	for i, q := range quotes {
		items[i] = coupon.LineItem{ResourceType: q.res.Type(), AmountCents: q.amount}
	}
	eligible, err := coup.Validate(now, items)
	if err != nil {
		return 0, nil, errs.Mark(err, ErrCouponInvalid)
	}

	return coup.ComputeDiscount(eligible), &normalized, nil
}

// reserveInTx is the serialization point: each touched (resource, date)
// partition is locked in sorted order, availability is re-checked under the
// lock, and the order plus its slots are inserted together. Any failure rolls
// the whole batch back.
func (h *holdCommandsImpl) reserveInTx(
	ctx context.Context,
	ord *order.Order,
	slots []*booking.Slot,
	couponCode *string,
	now time.Time,
) error {
	return h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, key := range sortedPartitionKeys(slots) {
			if err := tx.Slots().LockResourceDate(ctx, key.resourceID, key.date); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		for _, s := range slots {
			conflict, err := tx.Slots().HasOverlap(ctx, s.ResourceID(), s.TimeRange().Date(), s.TimeRange().StartMin(), s.TimeRange().EndMin(), now)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if conflict {
				return ErrSlotConflict
			}
		}

		if err := tx.Orders().Create(ctx, ord); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Slots().CreateBatch(ctx, slots); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if couponCode != nil {
			if err := tx.Coupons().IncrementUsage(ctx, *couponCode); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		payload, err := json.Marshal(map[string]any{
			"order_id":     ord.ID(),
			"order_number": ord.Number(),
			"email":        ord.Customer().Email,
			"type":         "order_created",
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Notifications().CreateJob(ctx, "email", "order_created", payload, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

type partitionKey struct {
	resourceID uuid.UUID
	date       string
}

// sortedPartitionKeys returns the distinct (resource, date) partitions of the
// batch in a stable order. Locking in sorted order prevents deadlocks between
// concurrent multi-item requests.
func sortedPartitionKeys(slots []*booking.Slot) []partitionKey {
	seen := make(map[partitionKey]struct{}, len(slots))
	keys := make([]partitionKey, 0, len(slots))
	for _, s := range slots {
		k := partitionKey{resourceID: s.ResourceID(), date: s.TimeRange().Date()}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].resourceID != keys[j].resourceID {
			return keys[i].resourceID.String() < keys[j].resourceID.String()
		}
		return keys[i].date < keys[j].date
	})
	return keys
}

func buildHoldResult(ord *order.Order, slots []*booking.Slot, quotes []itemQuote, subtotal, discount int64) *CreateHoldResult {
	reserved := make([]ReservedSlot, len(slots))
	for i, s := range slots {
		reserved[i] = ReservedSlot{
			SlotID:       s.ID(),
			ResourceID:   s.ResourceID(),
			ResourceName: quotes[i].res.Name(),
			Date:         s.TimeRange().Date(),
			Start:        s.TimeRange().StartLabel(),
			End:          s.TimeRange().EndLabel(),
			AmountCents:  s.AmountCents(),
			ExpiresAt:    s.ExpiresAt(),
		}
	}
	return &CreateHoldResult{
		OrderID:       ord.ID(),
		OrderNumber:   ord.Number(),
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    ord.TotalCents(),
		Slots:         reserved,
	}
}
