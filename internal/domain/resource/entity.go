package resource

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidType        = errors.New("invalid resource type")
	ErrInvalidPricingMode = errors.New("invalid pricing mode")
	ErrCapacityExceeded   = errors.New("people count exceeds resource capacity")
	ErrInvalidPeopleCount = errors.New("people count must be positive")
)

type Resource struct {
	id          uuid.UUID
	resType     Type
	name        string
	pricingMode PricingMode
	priceCents  int64
	maxPeople   int
}

func NewResource(id uuid.UUID, resType Type, name string, pricingMode PricingMode, priceCents int64, maxPeople int) (*Resource, error) {
	if !resType.IsValid() {
		return nil, ErrInvalidType
	}
	if !pricingMode.IsValid() {
		return nil, ErrInvalidPricingMode
	}
	return &Resource{
		id:          id,
		resType:     resType,
		name:        name,
		pricingMode: pricingMode,
		priceCents:  priceCents,
		maxPeople:   maxPeople,
	}, nil
}

func (r *Resource) ID() uuid.UUID            { return r.id }
func (r *Resource) Type() Type               { return r.resType }
func (r *Resource) Name() string             { return r.name }
func (r *Resource) PricingMode() PricingMode { return r.pricingMode }
func (r *Resource) PriceCents() int64        { return r.priceCents }
func (r *Resource) MaxPeople() int           { return r.maxPeople }

func (r *Resource) ValidatePeopleCount(people int) error {
	if people < 1 {
		return ErrInvalidPeopleCount
	}
	if r.maxPeople > 0 && people > r.maxPeople {
		return ErrCapacityExceeded
	}
	return nil
}

// PriceFor computes the line amount for a booking of the given length and
// party size under the resource's pricing mode. Durations are integer minutes;
// per-hour modes prorate by minute.
func (r *Resource) PriceFor(durationMin, people int) int64 {
	switch r.pricingMode {
	case PricePerResourcePerHour:
		return r.priceCents * int64(durationMin) / 60
	case PricePerPersonPerHour:
		return r.priceCents * int64(people) * int64(durationMin) / 60
	case PricePerPersonPerSession:
		return r.priceCents * int64(people)
	default:
		return 0
	}
}
