//go:build unit

package order_test

import (
	"regexp"
	"testing"
	"time"

	"leisure-booking-api/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	cases := []struct {
		name      string
		email     string
		firstName string
		lastName  string
		errIs     error
	}{
		{name: "valid", email: "anna@example.com", firstName: "Anna", lastName: "Nowak"},
		{name: "trims whitespace", email: "  anna@example.com ", firstName: " Anna ", lastName: " Nowak "},
		{name: "missing at sign", email: "anna.example.com", firstName: "Anna", lastName: "Nowak", errIs: order.ErrInvalidEmail},
		{name: "empty email", email: "   ", firstName: "Anna", lastName: "Nowak", errIs: order.ErrInvalidEmail},
		{name: "blank first name", email: "anna@example.com", firstName: "  ", lastName: "Nowak", errIs: order.ErrMissingName},
		{name: "blank last name", email: "anna@example.com", firstName: "Anna", lastName: "", errIs: order.ErrMissingName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := order.NewCustomer(tc.email, tc.firstName, tc.lastName, nil)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "anna@example.com", c.Email)
			assert.Equal(t, "Anna", c.FirstName)
			assert.Equal(t, "Nowak", c.LastName)
		})
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	customer, err := order.NewCustomer("anna@example.com", "Anna", "Nowak", nil)
	require.NoError(t, err)

	t.Run("total is subtotal minus discount", func(t *testing.T) {
		code := "ZIMA10"
		o, err := order.NewOrder(customer, order.PayOnline, &code, 15000, 1500, now)
		require.NoError(t, err)
		assert.Equal(t, int64(13500), o.TotalCents())
		assert.Equal(t, int64(1500), o.DiscountCents())
		require.NotNil(t, o.CouponCode())
		assert.Equal(t, "ZIMA10", *o.CouponCode())
	})

	t.Run("discount may zero the order out", func(t *testing.T) {
		o, err := order.NewOrder(customer, order.PayOnline, nil, 5000, 5000, now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), o.TotalCents())
	})

	t.Run("discount exceeding subtotal is rejected", func(t *testing.T) {
		_, err := order.NewOrder(customer, order.PayOnline, nil, 5000, 6000, now)
		assert.ErrorIs(t, err, order.ErrNegativeTotal)
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		_, err := order.NewOrder(customer, order.PaymentMethod("IOU"), nil, 5000, 0, now)
		assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
	})
}

func TestNewNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^BK-20260901-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		n := order.NewNumber(now)
		assert.Regexp(t, pattern, n)
		seen[n] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "numbers must not collide trivially")
}
