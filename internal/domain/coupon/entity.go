package coupon

import (
	"errors"
	"time"

	"leisure-booking-api/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("coupon not found")
	ErrInactive     = errors.New("coupon is inactive")
	ErrIneligible   = errors.New("coupon is not applicable to this order")
	ErrInvalidType  = errors.New("invalid coupon type")
	ErrInvalidValue = errors.New("coupon value must be positive")
)

// LineItem is the slice of an order a coupon is matched against.
type LineItem struct {
	ResourceType resource.Type
	AmountCents  int64
}

type Coupon struct {
	id            uuid.UUID
	code          string
	couponType    Type
	value         int64
	eligibleTypes []resource.Type
	validFrom     *time.Time
	validTo       *time.Time
	maxUses       *int32
	usedCount     int32
	minSpendCents *int64
	showOnLanding bool
}

func NewCoupon(
	id uuid.UUID,
	code string,
	couponType Type,
	value int64,
	eligibleTypes []resource.Type,
	validFrom, validTo *time.Time,
	maxUses *int32,
	usedCount int32,
	minSpendCents *int64,
	showOnLanding bool,
) (*Coupon, error) {
	if !couponType.IsValid() {
		return nil, ErrInvalidType
	}
	if value <= 0 {
		return nil, ErrInvalidValue
	}
	return &Coupon{
		id:            id,
		code:          NormalizeCode(code),
		couponType:    couponType,
		value:         value,
		eligibleTypes: eligibleTypes,
		validFrom:     validFrom,
		validTo:       validTo,
		maxUses:       maxUses,
		usedCount:     usedCount,
		minSpendCents: minSpendCents,
		showOnLanding: showOnLanding,
	}, nil
}

func (c *Coupon) ID() uuid.UUID                  { return c.id }
func (c *Coupon) Code() string                   { return c.code }
func (c *Coupon) Type() Type                     { return c.couponType }
func (c *Coupon) Value() int64                   { return c.value }
func (c *Coupon) EligibleTypes() []resource.Type { return c.eligibleTypes }
func (c *Coupon) ValidFrom() *time.Time          { return c.validFrom }
func (c *Coupon) ValidTo() *time.Time            { return c.validTo }
func (c *Coupon) MaxUses() *int32                { return c.maxUses }
func (c *Coupon) UsedCount() int32               { return c.usedCount }
func (c *Coupon) MinSpendCents() *int64          { return c.minSpendCents }
func (c *Coupon) ShowOnLanding() bool            { return c.showOnLanding }

func (c *Coupon) isActiveAt(t time.Time) bool {
	if c.validFrom != nil && t.Before(*c.validFrom) {
		return false
	}
	if c.validTo != nil && t.After(*c.validTo) {
		return false
	}
	if c.maxUses != nil && c.usedCount >= *c.maxUses {
		return false
	}
	return true
}

func (c *Coupon) matches(item LineItem) bool {
	if len(c.eligibleTypes) == 0 {
		return true
	}
	for _, t := range c.eligibleTypes {
		if t == item.ResourceType {
			return true
		}
	}
	return false
}

// Validate checks applicability and returns the subset of items the coupon
// applies to. Minimum spend is measured against the full item set, matching
// what the landing page advertises ("orders over X").
func (c *Coupon) Validate(now time.Time, items []LineItem) ([]LineItem, error) {
	if !c.isActiveAt(now) {
		return nil, ErrInactive
	}

	var subtotal int64
	eligible := make([]LineItem, 0, len(items))
	for _, item := range items {
		subtotal += item.AmountCents
		if c.matches(item) {
			eligible = append(eligible, item)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrIneligible
	}
	if c.minSpendCents != nil && subtotal < *c.minSpendCents {
		return nil, ErrIneligible
	}
	return eligible, nil
}

// ComputeDiscount is deterministic and side-effect free. PERCENT values are
// hundredths of a percent (1000 = 10.00%), so the divisor is 10000. The
// result never exceeds the eligible subtotal and never goes negative.
func (c *Coupon) ComputeDiscount(eligible []LineItem) int64 {
	var subtotal int64
	for _, item := range eligible {
		subtotal += item.AmountCents
	}
	if subtotal <= 0 {
		return 0
	}

	var amount int64
	switch c.couponType {
	case TypePercent:
		amount = subtotal * c.value / 10000
	case TypeFixed:
		amount = c.value
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
