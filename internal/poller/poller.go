// Package poller re-issues the current record query on a fixed cadence while
// real-time updates are enabled.
package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/metrics"
)

const DefaultInterval = 30 * time.Second

// Scheduler runs Idle -> Polling -> Idle. While polling, the refresh
// callback fires once per fixed interval; it must read the view state
// current at fire time, not a snapshot captured at enable time. A failed
// refresh does not stop the loop and is not retried before the next tick.
type Scheduler struct {
	interval time.Duration
	refresh  func(ctx context.Context) error
	logger   *zap.Logger

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewScheduler(interval time.Duration, refresh func(ctx context.Context) error, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		refresh:  refresh,
		logger:   logger,
	}
}

// Enable starts the polling loop. A no-op while already polling.
func (s *Scheduler) Enable(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		return
	}

	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.wg.Add(1)
	go s.run(ctx, stopCh)

	s.logger.Info("polling enabled", zap.Duration("interval", s.interval))
}

// Disable stops the loop. Once it returns, no further refresh fires.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	stopCh := s.stopCh
	s.stopCh = nil
	s.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	s.wg.Wait()

	s.logger.Info("polling disabled")
}

func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopCh != nil
}

func (s *Scheduler) run(ctx context.Context, stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			metrics.PollTicksTotal.Inc()
			if err := s.refresh(ctx); err != nil {
				metrics.PollFailuresTotal.Inc()
				s.logger.Warn("poll refresh failed", zap.Error(err))
			}
		case <-stopCh:
			return
		case <-ctx.Done():
			s.mu.Lock()
			if s.stopCh == stopCh {
				s.stopCh = nil
			}
			s.mu.Unlock()
			return
		}
	}
}
