package shared

import (
	"context"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/domain/payment"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/domain/settings"
	"leisure-booking-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// Reads: Direct access to command reads for validation outside transactions
	Reads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Coupons() CouponRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type SlotRepository interface {
	// LockResourceDate serializes all slot mutations for one (resource, date)
	// partition for the remainder of the transaction. Unrelated partitions
	// proceed in parallel.
	LockResourceDate(ctx context.Context, resourceID uuid.UUID, date string) error
	// HasOverlap reports whether any non-cancelled, unexpired slot overlaps
	// the given [startMin,endMin) range.
	HasOverlap(ctx context.Context, resourceID uuid.UUID, date string, startMin, endMin int, now time.Time) (bool, error)
	CreateBatch(ctx context.Context, slots []*booking.Slot) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*booking.Slot, error)
	// PromoteByOrderID flips the order's HOLD slots to BOOKED, returning the
	// number of rows affected.
	PromoteByOrderID(ctx context.Context, orderID uuid.UUID, now time.Time) (int64, error)
	// CancelHoldsByOrderID releases the order's still-HOLD slots. BOOKED rows
	// are untouched.
	CancelHoldsByOrderID(ctx context.Context, orderID uuid.UUID, now time.Time) (int64, error)
	// CancelAllByOrderID converges every non-cancelled slot of the order to
	// CANCELLED, BOOKED rows included. Admin-only.
	CancelAllByOrderID(ctx context.Context, orderID uuid.UUID, now time.Time) (int64, error)
	// CancelExpired reclaims lapsed holds whose order has no successful
	// payment; the condition on HOLD status makes it lose gracefully against
	// a concurrent promotion.
	CancelExpired(ctx context.Context, now time.Time) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
}

type PaymentRepository interface {
	Create(ctx context.Context, t *payment.Transaction) error
	// FindBySessionIDForUpdate row-locks the transaction so concurrent
	// webhook deliveries for one session serialize.
	FindBySessionIDForUpdate(ctx context.Context, sessionID string) (*payment.Transaction, error)
	Update(ctx context.Context, t *payment.Transaction) error
	HasSuccessForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}

type CouponRepository interface {
	IncrementUsage(ctx context.Context, code string) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type CommandReads interface {
	ResourcesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ResourceSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	Settings(ctx context.Context) (settings.Snapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	SlotsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*booking.Slot, error)
}

// Minimal snapshots for command read operations

type ResourceSnapshot struct {
	ID          uuid.UUID
	Type        resource.Type
	Name        string
	PricingMode resource.PricingMode
	PriceCents  int64
	MaxPeople   int
}

func (s *ResourceSnapshot) ToDomain() (*resource.Resource, error) {
	return resource.NewResource(s.ID, s.Type, s.Name, s.PricingMode, s.PriceCents, s.MaxPeople)
}

type CouponSnapshot struct {
	ID            uuid.UUID
	Code          string
	Type          coupon.Type
	Value         int64
	EligibleTypes []resource.Type
	ValidFrom     *time.Time
	ValidTo       *time.Time
	MaxUses       *int32
	UsedCount     int32
	MinSpendCents *int64
	ShowOnLanding bool
}

func (s *CouponSnapshot) ToDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(
		s.ID, s.Code, s.Type, s.Value, s.EligibleTypes,
		s.ValidFrom, s.ValidTo, s.MaxUses, s.UsedCount, s.MinSpendCents, s.ShowOnLanding,
	)
}

type OrderSnapshot struct {
	ID            uuid.UUID
	Number        string
	Email         string
	PaymentMethod order.PaymentMethod
	CouponCode    *string
	DiscountCents int64
	TotalCents    int64
	CreatedAt     time.Time
}
