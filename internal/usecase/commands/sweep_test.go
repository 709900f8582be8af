//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"leisure-booking-api/internal/domain/booking"
	"leisure-booking-api/internal/domain/payment"
	"leisure-booking-api/internal/pkg/clock"
	"leisure-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepExpiredHolds(t *testing.T) {
	reads := newFakeReads()
	uow := newFakeUoW(reads)
	clk := clock.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	cmd := commands.NewSweepCommands(uow, clk)

	tr, err := booking.NewTimeRange("2026-01-15", 840, 900)
	require.NoError(t, err)

	expired := booking.NewHold(uuid.New(), uuid.New(), tr, 2, 8000, clk.Now().Add(-30*time.Minute), clk.Now().Add(-time.Minute))
	live := booking.NewHold(uuid.New(), uuid.New(), tr, 2, 8000, clk.Now(), clk.Now().Add(15*time.Minute))
	booked := booking.NewHold(uuid.New(), uuid.New(), tr, 2, 8000, clk.Now().Add(-30*time.Minute), clk.Now().Add(-time.Minute))
	require.NoError(t, booked.Promote(clk.Now().Add(-20*time.Minute)))

	// Expired hold whose order was already paid: the webhook won the race and
	// will promote it, so the sweep must skip it.
	paidOrderID := uuid.New()
	paid := booking.NewHold(uuid.New(), paidOrderID, tr, 2, 8000, clk.Now().Add(-30*time.Minute), clk.Now().Add(-time.Minute))
	paidTr := payment.NewTransaction(paidOrderID, "session-paid", 8000, "PLN", clk.Now().Add(-10*time.Minute))
	applied, err := paidTr.RecordStatus(payment.StatusSuccess, clk.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	require.True(t, applied)
	uow.state.payments[paidTr.SessionID()] = paidTr

	uow.state.slots = append(uow.state.slots, expired, live, booked, paid)

	n, err := cmd.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, booking.StatusCancelled, expired.Status())
	assert.Equal(t, booking.StatusHold, live.Status())
	assert.Equal(t, booking.StatusBooked, booked.Status(), "booked slots are never reclaimed")
	assert.Equal(t, booking.StatusHold, paid.Status(), "paid orders keep their holds for promotion")

	n, err = cmd.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "second sweep finds nothing")
}
