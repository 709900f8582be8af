package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotHeld       = errors.New("slot is not in HOLD status")
	ErrSlotBooked    = errors.New("slot is already booked")
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Slot is a reservation of one resource over one time range. It is created in
// HOLD with an expiry and either promoted to BOOKED by a successful payment or
// driven to CANCELLED by expiry, payment failure or explicit release.
type Slot struct {
	id          uuid.UUID
	orderID     uuid.UUID
	resourceID  uuid.UUID
	timeRange   TimeRange
	peopleCount int
	amountCents int64
	status      Status
	expiresAt   time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewHold(orderID, resourceID uuid.UUID, tr TimeRange, peopleCount int, amountCents int64, now, expiresAt time.Time) *Slot {
	return &Slot{
		id:          uuid.New(),
		orderID:     orderID,
		resourceID:  resourceID,
		timeRange:   tr,
		peopleCount: peopleCount,
		amountCents: amountCents,
		status:      StatusHold,
		expiresAt:   expiresAt,
		createdAt:   now,
		updatedAt:   now,
	}
}

func ReconstructSlot(
	id, orderID, resourceID uuid.UUID,
	tr TimeRange,
	peopleCount int,
	amountCents int64,
	status Status,
	expiresAt, createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:          id,
		orderID:     orderID,
		resourceID:  resourceID,
		timeRange:   tr,
		peopleCount: peopleCount,
		amountCents: amountCents,
		status:      status,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) OrderID() uuid.UUID    { return s.orderID }
func (s *Slot) ResourceID() uuid.UUID { return s.resourceID }
func (s *Slot) TimeRange() TimeRange  { return s.timeRange }
func (s *Slot) PeopleCount() int      { return s.peopleCount }
func (s *Slot) AmountCents() int64    { return s.amountCents }
func (s *Slot) Status() Status        { return s.status }
func (s *Slot) ExpiresAt() time.Time  { return s.expiresAt }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }

// HasExpired reports whether a HOLD has lapsed. The stored status is not
// trusted on its own because the sweeper runs asynchronously.
func (s *Slot) HasExpired(now time.Time) bool {
	return s.status == StatusHold && !s.expiresAt.After(now)
}

// Blocks reports whether the slot makes its range unavailable at now.
func (s *Slot) Blocks(now time.Time) bool {
	switch s.status {
	case StatusBooked:
		return true
	case StatusHold:
		return s.expiresAt.After(now)
	case StatusCancelled:
		return false
	default:
		return false
	}
}

// Promote moves a HOLD to BOOKED. Promoting an already-BOOKED slot is a no-op
// so webhook replays stay idempotent.
func (s *Slot) Promote(now time.Time) error {
	switch s.status {
	case StatusBooked:
		return nil
	case StatusHold:
		s.status = StatusBooked
		s.updatedAt = now
		return nil
	default:
		return ErrNotHeld
	}
}

// Cancel releases a slot. Cancelling an already-cancelled slot is a no-op;
// a BOOKED slot cannot be released through this path.
func (s *Slot) Cancel(now time.Time) error {
	switch s.status {
	case StatusCancelled:
		return nil
	case StatusHold:
		s.status = StatusCancelled
		s.updatedAt = now
		return nil
	default:
		return ErrSlotBooked
	}
}
