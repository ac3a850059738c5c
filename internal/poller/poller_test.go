package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSchedulerFiresOnInterval(t *testing.T) {
	var calls atomic.Int64
	s := NewScheduler(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())

	s.Enable(context.Background())
	defer s.Disable()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerEnableIsIdempotent(t *testing.T) {
	var calls atomic.Int64
	s := NewScheduler(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())

	ctx := context.Background()
	s.Enable(ctx)
	s.Enable(ctx)
	s.Enable(ctx)
	assert.True(t, s.Enabled())

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	s.Disable()
	assert.False(t, s.Enabled())

	// A second disable is a no-op, not a panic.
	s.Disable()
}

func TestSchedulerDisableStopsRefreshes(t *testing.T) {
	var calls atomic.Int64
	s := NewScheduler(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())

	s.Enable(context.Background())
	assert.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	s.Disable()
	after := calls.Load()

	// Wait past several intervals; nothing more may fire.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestSchedulerKeepsPollingAfterFailedRefresh(t *testing.T) {
	var calls atomic.Int64
	s := NewScheduler(10*time.Millisecond, func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("transient fetch failure")
		}
		return nil
	}, zap.NewNop())

	s.Enable(context.Background())
	defer s.Disable()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	var calls atomic.Int64
	s := NewScheduler(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Enable(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		return !s.Enabled()
	}, time.Second, 5*time.Millisecond)

	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestSchedulerZeroIntervalFallsBackToDefault(t *testing.T) {
	s := NewScheduler(0, func(ctx context.Context) error { return nil }, zap.NewNop())
	assert.Equal(t, DefaultInterval, s.interval)
}
