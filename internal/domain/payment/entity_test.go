//go:build unit

package payment_test

import (
	"testing"
	"time"

	"leisure-booking-api/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTx(t *testing.T) (*payment.Transaction, time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return payment.NewTransaction(uuid.New(), uuid.NewString(), 15000, "PLN", now), now
}

func TestNewTransaction(t *testing.T) {
	tx, now := newTx(t)

	assert.Equal(t, payment.StatusPending, tx.Status())
	require.Len(t, tx.History(), 1)
	assert.Equal(t, payment.StatusPending, tx.History()[0].Status)
	assert.Equal(t, now, tx.History()[0].At)
}

func TestRecordStatus(t *testing.T) {
	t.Run("success is applied and appended", func(t *testing.T) {
		tx, now := newTx(t)
		applied, err := tx.RecordStatus(payment.StatusSuccess, now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, payment.StatusSuccess, tx.Status())
		assert.Len(t, tx.History(), 2)
	})

	t.Run("replayed terminal status is suppressed", func(t *testing.T) {
		tx, now := newTx(t)
		_, err := tx.RecordStatus(payment.StatusSuccess, now.Add(time.Minute))
		require.NoError(t, err)

		applied, err := tx.RecordStatus(payment.StatusSuccess, now.Add(2*time.Minute))
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Len(t, tx.History(), 2)
	})

	t.Run("failure after success never downgrades", func(t *testing.T) {
		tx, now := newTx(t)
		_, err := tx.RecordStatus(payment.StatusSuccess, now.Add(time.Minute))
		require.NoError(t, err)

		applied, err := tx.RecordStatus(payment.StatusFailed, now.Add(2*time.Minute))
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, payment.StatusSuccess, tx.Status())
	})

	t.Run("refund after success is allowed", func(t *testing.T) {
		tx, now := newTx(t)
		_, err := tx.RecordStatus(payment.StatusSuccess, now.Add(time.Minute))
		require.NoError(t, err)

		applied, err := tx.RecordStatus(payment.StatusRefunded, now.Add(2*time.Minute))
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, payment.StatusRefunded, tx.Status())
	})

	t.Run("failure before success still records", func(t *testing.T) {
		tx, now := newTx(t)
		applied, err := tx.RecordStatus(payment.StatusFailed, now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = tx.RecordStatus(payment.StatusSuccess, now.Add(2*time.Minute))
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, payment.StatusSuccess, tx.Status())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		tx, now := newTx(t)
		_, err := tx.RecordStatus(payment.Status("MAYBE"), now)
		assert.ErrorIs(t, err, payment.ErrInvalidStatus)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, payment.StatusPending.IsTerminal())
	assert.True(t, payment.StatusSuccess.IsTerminal())
	assert.True(t, payment.StatusTimedOut.IsTerminal())
	assert.False(t, payment.Status("MAYBE").IsTerminal())
}
