//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/domain/resource"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = config.BookingConfig{MaxDurationMin: 240, MaxItems: 10, MaxPeople: 30}

type holdFixture struct {
	uow   *fakeUoW
	reads *fakeReads
	clk   *clock.MockClock
	cmd   commands.HoldCommands
	lane  uuid.UUID
}

func newHoldFixture(t *testing.T) *holdFixture {
	t.Helper()
	reads := newFakeReads()
	lane := uuid.New()
	reads.resources[lane] = &shared.ResourceSnapshot{
		ID:          lane,
		Type:        resource.TypeBowlingLane,
		Name:        "Lane 1",
		PricingMode: resource.PricePerResourcePerHour,
		PriceCents:  8000,
		MaxPeople:   6,
	}
	uow := newFakeUoW(reads)
	clk := clock.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	return &holdFixture{
		uow:   uow,
		reads: reads,
		clk:   clk,
		cmd:   commands.NewHoldCommands(uow, clk, testLimits, time.UTC),
		lane:  lane,
	}
}

func validParams(lane uuid.UUID) commands.CreateHoldParams {
	return commands.CreateHoldParams{
		Items: []commands.HoldItem{{
			ResourceID:  lane,
			Date:        "2026-01-15",
			Start:       "14:00",
			DurationMin: 60,
			PeopleCount: 4,
		}},
		Customer: commands.CustomerParams{
			Email:     "anna@example.com",
			FirstName: "Anna",
			LastName:  "Nowak",
		},
		PaymentMethod: order.PayOnline,
	}
}

func TestCreateHold(t *testing.T) {
	t.Run("creates order and slots with the online TTL", func(t *testing.T) {
		f := newHoldFixture(t)
		res, err := f.cmd.CreateHold(context.Background(), validParams(f.lane))
		require.NoError(t, err)

		assert.Equal(t, int64(8000), res.SubtotalCents)
		assert.Equal(t, int64(0), res.DiscountCents)
		assert.Equal(t, int64(8000), res.TotalCents)
		assert.Regexp(t, `^BK-20260115-`, res.OrderNumber)

		require.Len(t, res.Slots, 1)
		assert.Equal(t, "14:00", res.Slots[0].Start)
		assert.Equal(t, "15:00", res.Slots[0].End)
		assert.Equal(t, f.clk.Now().Add(15*time.Minute), res.Slots[0].ExpiresAt)

		require.Len(t, f.uow.state.slots, 1)
		assert.Equal(t, booking.StatusHold, f.uow.state.slots[0].Status())
		require.Len(t, f.uow.state.orders, 1)
		require.Len(t, f.uow.state.jobs, 1)
		assert.Equal(t, "order_created", f.uow.state.jobs[0].topic)
		assert.NotEmpty(t, f.uow.state.lockedKeys, "partition lock must be taken")
	})

	t.Run("conflict with an existing hold rolls the batch back", func(t *testing.T) {
		f := newHoldFixture(t)
		_, err := f.cmd.CreateHold(context.Background(), validParams(f.lane))
		require.NoError(t, err)

		_, err = f.cmd.CreateHold(context.Background(), validParams(f.lane))
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
		assert.Len(t, f.uow.state.orders, 1, "second order must not persist")
		assert.Len(t, f.uow.state.slots, 1)
	})

	t.Run("expired hold does not block a new request", func(t *testing.T) {
		f := newHoldFixture(t)
		_, err := f.cmd.CreateHold(context.Background(), validParams(f.lane))
		require.NoError(t, err)

		f.clk.Add(16 * time.Minute)
		_, err = f.cmd.CreateHold(context.Background(), validParams(f.lane))
		assert.NoError(t, err)
	})

	t.Run("intra-batch conflict fails before touching the database", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(f.lane)
		second := p.Items[0]
		second.Start = "14:30"
		p.Items = append(p.Items, second)

		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
		assert.Empty(t, f.uow.state.lockedKeys)
	})

	t.Run("all-or-nothing across a mixed batch", func(t *testing.T) {
		f := newHoldFixture(t)
		quiz := uuid.New()
		f.reads.resources[quiz] = &shared.ResourceSnapshot{
			ID: quiz, Type: resource.TypeQuizRoom, Name: "Quiz A",
			PricingMode: resource.PricePerPersonPerSession, PriceCents: 3500, MaxPeople: 10,
		}
		f.uow.state.overlapWith[quiz] = true

		p := validParams(f.lane)
		p.Items = append(p.Items, commands.HoldItem{
			ResourceID: quiz, Date: "2026-01-15", Start: "14:00", DurationMin: 60, PeopleCount: 4,
		})

		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
		assert.Empty(t, f.uow.state.slots, "no slot of the batch may survive")
		assert.Empty(t, f.uow.state.orders)
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(uuid.New())
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrInvalidResource)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(f.lane)
		p.Items[0].PeopleCount = 7
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrCapacityExceeded)
	})

	t.Run("off-grid start time", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(f.lane)
		p.Items[0].Start = "14:10"
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrInvalidTimeFormat)
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(f.lane)
		p.Items = nil
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrTooManyItems)
	})

	t.Run("oversized batch", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(f.lane)
		item := p.Items[0]
		for i := 0; i < testLimits.MaxItems; i++ {
			p.Items = append(p.Items, item)
		}
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrTooManyItems)
	})

	t.Run("invalid customer", func(t *testing.T) {
		f := newHoldFixture(t)
		p := validParams(f.lane)
		p.Customer.Email = "not-an-email"
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrInvalidCustomer)
	})
}

func TestCreateHoldWithCoupon(t *testing.T) {
	couponFixture := func(t *testing.T) (*holdFixture, commands.CreateHoldParams) {
		f := newHoldFixture(t)
		f.reads.coupons["ZIMA10"] = &shared.CouponSnapshot{
			ID:    uuid.New(),
			Code:  "ZIMA10",
			Type:  "PERCENT",
			Value: 1000,
		}
		p := validParams(f.lane)
		code := "  zim a10 "
		p.CouponCode = &code
		return f, p
	}

	t.Run("normalizes, discounts and consumes usage", func(t *testing.T) {
		f, p := couponFixture(t)
		res, err := f.cmd.CreateHold(context.Background(), p)
		require.NoError(t, err)

		assert.Equal(t, int64(800), res.DiscountCents)
		assert.Equal(t, int64(7200), res.TotalCents)
		assert.Equal(t, 1, f.uow.state.couponUses["ZIMA10"])
		require.NotNil(t, f.uow.state.orders[0].CouponCode())
		assert.Equal(t, "ZIMA10", *f.uow.state.orders[0].CouponCode())
	})

	t.Run("unknown code rejects the hold", func(t *testing.T) {
		f, p := couponFixture(t)
		bad := "NOPE"
		p.CouponCode = &bad
		_, err := f.cmd.CreateHold(context.Background(), p)
		assert.ErrorIs(t, err, commands.ErrCouponInvalid)
		assert.Empty(t, f.uow.state.orders)
	})

	t.Run("blank code is ignored", func(t *testing.T) {
		f, p := couponFixture(t)
		blank := "   "
		p.CouponCode = &blank
		res, err := f.cmd.CreateHold(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.DiscountCents)
		assert.Nil(t, f.uow.state.orders[0].CouponCode())
	})
}
