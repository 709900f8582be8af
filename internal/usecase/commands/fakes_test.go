//go:build unit

package commands_test

import (
	"context"
	"errors"
	"time"

	"leisure-booking-api/internal/domain/booking"
	domorder "leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/domain/payment"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/infra/db"
	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory doubles for the unit of work and its repositories. State written
// inside Within is visible afterwards; rollback is simulated by snapshotting
// before the callback and restoring on error.

type fakeState struct {
	slots       []*booking.Slot
	orders      []*domorder.Order
	payments    map[string]*payment.Transaction
	couponUses  map[string]int
	jobs        []fakeJob
	overlapWith map[uuid.UUID]bool
	lockedKeys  []string
}

type fakeJob struct {
	kind  string
	topic string
	runAt time.Time
}

func newFakeState() *fakeState {
	return &fakeState{
		payments:    make(map[string]*payment.Transaction),
		couponUses:  make(map[string]int),
		overlapWith: make(map[uuid.UUID]bool),
	}
}

func (s *fakeState) hasSuccessPayment(orderID uuid.UUID) bool {
	for _, tr := range s.payments {
		if tr.OrderID() == orderID && tr.Status() == payment.StatusSuccess {
			return true
		}
	}
	return false
}

type fakeUoW struct {
	state     *fakeState
	reads     *fakeReads
	withinErr error
}

func newFakeUoW(reads *fakeReads) *fakeUoW {
	return &fakeUoW{state: newFakeState(), reads: reads}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.withinErr != nil {
		return u.withinErr
	}
	snapshot := *u.state
	snapshot.slots = append([]*booking.Slot(nil), u.state.slots...)
	snapshot.orders = append([]*domorder.Order(nil), u.state.orders...)
	snapshot.jobs = append([]fakeJob(nil), u.state.jobs...)
	if err := fn(ctx, &fakeTx{state: u.state, reads: u.reads}); err != nil {
		*u.state = snapshot
		return err
	}
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) Reads() shared.CommandReads { return u.reads }

type fakeTx struct {
	state *fakeState
	reads *fakeReads
}

func (t *fakeTx) Slots() shared.SlotRepository                 { return &fakeSlots{state: t.state} }
func (t *fakeTx) Orders() shared.OrderRepository               { return &fakeOrders{state: t.state} }
func (t *fakeTx) Payments() shared.PaymentRepository           { return &fakePayments{state: t.state} }
func (t *fakeTx) Coupons() shared.CouponRepository             { return &fakeCoupons{state: t.state} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotifications{state: t.state} }
func (t *fakeTx) Reads() shared.CommandReads                   { return t.reads }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeSlots struct {
	state *fakeState
}

func (r *fakeSlots) LockResourceDate(_ context.Context, resourceID uuid.UUID, date string) error {
	r.state.lockedKeys = append(r.state.lockedKeys, resourceID.String()+"|"+date)
	return nil
}

func (r *fakeSlots) HasOverlap(_ context.Context, resourceID uuid.UUID, date string, startMin, endMin int, now time.Time) (bool, error) {
	if r.state.overlapWith[resourceID] {
		return true, nil
	}
	probe, err := booking.NewTimeRange(date, startMin, endMin)
	if err != nil {
		return false, err
	}
	for _, s := range r.state.slots {
		if s.ResourceID() == resourceID && s.Blocks(now) && s.TimeRange().Overlaps(probe) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSlots) CreateBatch(_ context.Context, slots []*booking.Slot) error {
	r.state.slots = append(r.state.slots, slots...)
	return nil
}

func (r *fakeSlots) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*booking.Slot, error) {
	var out []*booking.Slot
	for _, s := range r.state.slots {
		if s.OrderID() == orderID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlots) PromoteByOrderID(_ context.Context, orderID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for _, s := range r.state.slots {
		if s.OrderID() == orderID && s.Status() == booking.StatusHold {
			if err := s.Promote(now); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (r *fakeSlots) CancelHoldsByOrderID(_ context.Context, orderID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for _, s := range r.state.slots {
		if s.OrderID() == orderID && s.Status() == booking.StatusHold {
			if err := s.Cancel(now); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (r *fakeSlots) CancelAllByOrderID(_ context.Context, orderID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for i, s := range r.state.slots {
		if s.OrderID() != orderID || s.Status() == booking.StatusCancelled {
			continue
		}
		r.state.slots[i] = booking.ReconstructSlot(
			s.ID(), s.OrderID(), s.ResourceID(), s.TimeRange(), s.PeopleCount(),
			s.AmountCents(), booking.StatusCancelled, s.ExpiresAt(), s.CreatedAt(), now,
		)
		n++
	}
	return n, nil
}

// CancelExpired mirrors the SQL guard: a hold whose order already has a
// SUCCESS transaction is left for promotion, never reclaimed.
func (r *fakeSlots) CancelExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, s := range r.state.slots {
		if !s.HasExpired(now) || r.state.hasSuccessPayment(s.OrderID()) {
			continue
		}
		if err := s.Cancel(now); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type fakeOrders struct {
	state *fakeState
}

func (r *fakeOrders) Create(_ context.Context, o *domorder.Order) error {
	r.state.orders = append(r.state.orders, o)
	return nil
}

type fakePayments struct {
	state *fakeState
}

var errFakeNotFound = errors.New("not found")

func (r *fakePayments) Create(_ context.Context, tr *payment.Transaction) error {
	r.state.payments[tr.SessionID()] = tr
	return nil
}

func (r *fakePayments) FindBySessionIDForUpdate(_ context.Context, sessionID string) (*payment.Transaction, error) {
	tr, ok := r.state.payments[sessionID]
	if !ok {
		return nil, errFakeNotFound
	}
	return tr, nil
}

func (r *fakePayments) Update(_ context.Context, tr *payment.Transaction) error {
	r.state.payments[tr.SessionID()] = tr
	return nil
}

func (r *fakePayments) HasSuccessForOrder(_ context.Context, orderID uuid.UUID) (bool, error) {
	return r.state.hasSuccessPayment(orderID), nil
}

type fakeCoupons struct {
	state *fakeState
}

func (r *fakeCoupons) IncrementUsage(_ context.Context, code string) error {
	r.state.couponUses[code]++
	return nil
}

type fakeNotifications struct {
	state *fakeState
}

func (r *fakeNotifications) CreateJob(_ context.Context, kind, topic string, _ []byte, runAt time.Time) error {
	r.state.jobs = append(r.state.jobs, fakeJob{kind: kind, topic: topic, runAt: runAt})
	return nil
}

type fakeReads struct {
	resources map[uuid.UUID]*shared.ResourceSnapshot
	coupons   map[string]*shared.CouponSnapshot
	settings  settings.Snapshot
	orders    map[uuid.UUID]*shared.OrderSnapshot
	slotsByID map[uuid.UUID][]*booking.Slot
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		resources: make(map[uuid.UUID]*shared.ResourceSnapshot),
		coupons:   make(map[string]*shared.CouponSnapshot),
		settings:  settings.Defaults(),
		orders:    make(map[uuid.UUID]*shared.OrderSnapshot),
		slotsByID: make(map[uuid.UUID][]*booking.Slot),
	}
}

func (f *fakeReads) ResourcesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*shared.ResourceSnapshot, error) {
	out := make(map[uuid.UUID]*shared.ResourceSnapshot, len(ids))
	for _, id := range ids {
		if snap, ok := f.resources[id]; ok {
			out[id] = snap
		}
	}
	return out, nil
}

func (f *fakeReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	snap, ok := f.coupons[code]
	if !ok {
		return nil, errFakeNotFound
	}
	return snap, nil
}

func (f *fakeReads) Settings(context.Context) (settings.Snapshot, error) {
	return f.settings, nil
}

func (f *fakeReads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	snap, ok := f.orders[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return snap, nil
}

func (f *fakeReads) SlotsByOrderID(_ context.Context, orderID uuid.UUID) ([]*booking.Slot, error) {
	return f.slotsByID[orderID], nil
}

// fakeGateway scripts gateway behavior per test.
type fakeGateway struct {
	registerErr error
	signErr     error
	verifyErr   error
	registered  []commands.RegisterSessionParams
	verified    int
}

func (g *fakeGateway) RegisterSession(_ context.Context, p commands.RegisterSessionParams) (*commands.RegisterSessionResult, error) {
	g.registered = append(g.registered, p)
	if g.registerErr != nil {
		return nil, g.registerErr
	}
	return &commands.RegisterSessionResult{Token: "tok", RedirectURL: "https://pay.example/trnRequest/tok"}, nil
}

func (g *fakeGateway) VerifyNotificationSign(commands.Notification) error {
	return g.signErr
}

func (g *fakeGateway) VerifyTransaction(context.Context, string, int64, int64, string) ([]byte, error) {
	g.verified++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return []byte(`{"status":"success"}`), nil
}

// fakePublisher records published events.
type fakePublisher struct {
	booked    []uuid.UUID
	cancelled []uuid.UUID
}

func (p *fakePublisher) PublishOrderBooked(_ context.Context, orderID uuid.UUID, _ string) error {
	p.booked = append(p.booked, orderID)
	return nil
}

func (p *fakePublisher) PublishOrderCancelled(_ context.Context, orderID uuid.UUID, _, _ string) error {
	p.cancelled = append(p.cancelled, orderID)
	return nil
}
