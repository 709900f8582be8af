//go:build unit

package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweep struct {
	calls atomic.Int64
}

func (s *countingSweep) SweepExpiredHolds(context.Context) (int64, error) {
	s.calls.Add(1)
	return 1, nil
}

func TestSweeperRunsPeriodically(t *testing.T) {
	sweep := &countingSweep{}
	s := worker.NewSweeper(sweep, config.BookingConfig{
		SweepInterval: 10 * time.Millisecond,
		SweepTimeout:  time.Second,
	})

	s.Start()
	assert.Eventually(t, func() bool {
		return sweep.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	settled := sweep.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, sweep.calls.Load(), "no more sweeps after stop")
}

func TestSweeperStopBeforeStart(t *testing.T) {
	s := worker.NewSweeper(&countingSweep{}, config.BookingConfig{
		SweepInterval: time.Minute,
		SweepTimeout:  time.Second,
	})
	assert.NoError(t, s.Stop(context.Background()))
}
