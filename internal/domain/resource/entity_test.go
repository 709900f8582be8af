//go:build unit

package resource_test

import (
	"testing"

	"leisure-booking-api/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResource(t *testing.T, mode resource.PricingMode, priceCents int64, maxPeople int) *resource.Resource {
	t.Helper()
	r, err := resource.NewResource(uuid.New(), resource.TypeBowlingLane, "Lane 1", mode, priceCents, maxPeople)
	require.NoError(t, err)
	return r
}

func TestNewResource(t *testing.T) {
	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := resource.NewResource(uuid.New(), resource.Type("SAUNA"), "X", resource.PricePerResourcePerHour, 100, 4)
		assert.ErrorIs(t, err, resource.ErrInvalidType)
	})

	t.Run("rejects unknown pricing mode", func(t *testing.T) {
		_, err := resource.NewResource(uuid.New(), resource.TypeQuizRoom, "X", resource.PricingMode("FLAT"), 100, 4)
		assert.ErrorIs(t, err, resource.ErrInvalidPricingMode)
	})
}

func TestPriceFor(t *testing.T) {
	cases := []struct {
		name        string
		mode        resource.PricingMode
		priceCents  int64
		durationMin int
		people      int
		want        int64
	}{
		{name: "per resource full hour", mode: resource.PricePerResourcePerHour, priceCents: 8000, durationMin: 60, people: 6, want: 8000},
		{name: "per resource prorated", mode: resource.PricePerResourcePerHour, priceCents: 8000, durationMin: 90, people: 6, want: 12000},
		{name: "per person per hour", mode: resource.PricePerPersonPerHour, priceCents: 2500, durationMin: 60, people: 4, want: 10000},
		{name: "per person prorated", mode: resource.PricePerPersonPerHour, priceCents: 2500, durationMin: 30, people: 4, want: 5000},
		{name: "per person per session ignores duration", mode: resource.PricePerPersonPerSession, priceCents: 3500, durationMin: 120, people: 8, want: 28000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newResource(t, tc.mode, tc.priceCents, 0)
			assert.Equal(t, tc.want, r.PriceFor(tc.durationMin, tc.people))
		})
	}
}

func TestValidatePeopleCount(t *testing.T) {
	r := newResource(t, resource.PricePerResourcePerHour, 8000, 6)

	assert.NoError(t, r.ValidatePeopleCount(1))
	assert.NoError(t, r.ValidatePeopleCount(6))
	assert.ErrorIs(t, r.ValidatePeopleCount(7), resource.ErrCapacityExceeded)
	assert.ErrorIs(t, r.ValidatePeopleCount(0), resource.ErrInvalidPeopleCount)

	unbounded := newResource(t, resource.PricePerResourcePerHour, 8000, 0)
	assert.NoError(t, unbounded.ValidatePeopleCount(100))
}
