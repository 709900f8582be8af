//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"leisure-booking-api/internal/domain/coupon"
	"leisure-booking-api/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "zima10", want: "ZIMA10"},
		{name: "inner whitespace", input: "  zim a10 ", want: "ZIMA10"},
		{name: "already normalized", input: "ZIMA10", want: "ZIMA10"},
		{name: "tabs and newlines", input: "\tzi\nma10\n", want: "ZIMA10"},
		{name: "empty", input: "   ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := coupon.NormalizeCode(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, coupon.NormalizeCode(got), "normalization must be idempotent")
		})
	}
}

func percentCoupon(t *testing.T, value int64, mutate ...func(*couponParams)) *coupon.Coupon {
	t.Helper()
	p := &couponParams{
		code:       "ZIMA10",
		couponType: coupon.TypePercent,
		value:      value,
	}
	for _, m := range mutate {
		m(p)
	}
	c, err := coupon.NewCoupon(
		uuid.New(), p.code, p.couponType, p.value, p.eligibleTypes,
		p.validFrom, p.validTo, p.maxUses, p.usedCount, p.minSpendCents, false,
	)
	require.NoError(t, err)
	return c
}

type couponParams struct {
	code          string
	couponType    coupon.Type
	value         int64
	eligibleTypes []resource.Type
	validFrom     *time.Time
	validTo       *time.Time
	maxUses       *int32
	usedCount     int32
	minSpendCents *int64
}

func TestComputeDiscount(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	items := []coupon.LineItem{{ResourceType: resource.TypeBowlingLane, AmountCents: 15000}}

	t.Run("percent uses hundredths of a percent", func(t *testing.T) {
		c := percentCoupon(t, 1000) // 10.00%
		eligible, err := c.Validate(now, items)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), c.ComputeDiscount(eligible))
	})

	t.Run("fixed discount clamps to subtotal", func(t *testing.T) {
		c := percentCoupon(t, 10000, func(p *couponParams) { p.couponType = coupon.TypeFixed })
		eligible, err := c.Validate(now, []coupon.LineItem{{ResourceType: resource.TypeQuizRoom, AmountCents: 5000}})
		require.NoError(t, err)
		assert.Equal(t, int64(5000), c.ComputeDiscount(eligible))
	})

	t.Run("discount only applies to eligible items", func(t *testing.T) {
		c := percentCoupon(t, 1000, func(p *couponParams) {
			p.eligibleTypes = []resource.Type{resource.TypeBowlingLane}
		})
		mixed := []coupon.LineItem{
			{ResourceType: resource.TypeBowlingLane, AmountCents: 10000},
			{ResourceType: resource.TypeKaraokeRoom, AmountCents: 90000},
		}
		eligible, err := c.Validate(now, mixed)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), c.ComputeDiscount(eligible))
	})

	t.Run("zero eligible subtotal yields zero", func(t *testing.T) {
		c := percentCoupon(t, 1000)
		assert.Equal(t, int64(0), c.ComputeDiscount(nil))
	})
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	items := []coupon.LineItem{{ResourceType: resource.TypeBowlingLane, AmountCents: 15000}}

	cases := []struct {
		name   string
		mutate func(*couponParams)
		errIs  error
	}{
		{
			name: "active coupon passes",
		},
		{
			name: "not yet valid",
			mutate: func(p *couponParams) {
				from := now.Add(time.Hour)
				p.validFrom = &from
			},
			errIs: coupon.ErrInactive,
		},
		{
			name: "expired",
			mutate: func(p *couponParams) {
				to := now.Add(-time.Hour)
				p.validTo = &to
			},
			errIs: coupon.ErrInactive,
		},
		{
			name: "exhausted uses",
			mutate: func(p *couponParams) {
				max := int32(5)
				p.maxUses = &max
				p.usedCount = 5
			},
			errIs: coupon.ErrInactive,
		},
		{
			name: "no eligible item",
			mutate: func(p *couponParams) {
				p.eligibleTypes = []resource.Type{resource.TypeKaraokeRoom}
			},
			errIs: coupon.ErrIneligible,
		},
		{
			name: "below minimum spend",
			mutate: func(p *couponParams) {
				min := int64(20000)
				p.minSpendCents = &min
			},
			errIs: coupon.ErrIneligible,
		},
		{
			name: "minimum spend exactly met",
			mutate: func(p *couponParams) {
				min := int64(15000)
				p.minSpendCents = &min
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c *coupon.Coupon
			if tc.mutate != nil {
				c = percentCoupon(t, 1000, tc.mutate)
			} else {
				c = percentCoupon(t, 1000)
			}
			eligible, err := c.Validate(now, items)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, eligible)
		})
	}
}

func TestNewCoupon(t *testing.T) {
	t.Run("rejects non-positive value", func(t *testing.T) {
		_, err := coupon.NewCoupon(uuid.New(), "X", coupon.TypePercent, 0, nil, nil, nil, nil, 0, nil, false)
		assert.ErrorIs(t, err, coupon.ErrInvalidValue)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := coupon.NewCoupon(uuid.New(), "X", coupon.Type("HALF"), 10, nil, nil, nil, nil, 0, nil, false)
		assert.ErrorIs(t, err, coupon.ErrInvalidType)
	})
}
