package scheduler

import (
	"context"
	"time"

	"github.com/yingnomad/remotelife/internal/logger"
)

// DefaultGCInterval is how often expired sessions are swept
const DefaultGCInterval = 15 * time.Minute

// Sweeper is a session store that must drop expired entries itself.
// Redis expires keys on its own and needs no collector.
type Sweeper interface {
	Sweep(now time.Time) int
	Len() int
}

// SessionCollector handles cleanup of expired in-memory sessions
type SessionCollector struct {
	sessions Sweeper
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewSessionCollector creates a new session collector
func NewSessionCollector(sessions Sweeper, log logger.Logger, interval time.Duration) *SessionCollector {
	if interval <= 0 {
		interval = DefaultGCInterval
	}

	return &SessionCollector{
		sessions: sessions,
		logger:   log,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (sc *SessionCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect()
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the collector
func (sc *SessionCollector) Stop() {
	close(sc.stopCh)
}

// Collect removes expired sessions and returns how many were dropped
func (sc *SessionCollector) Collect() int {
	removed := sc.sessions.Sweep(sc.now())

	if removed > 0 {
		sc.logger.Info("expired sessions collected",
			logger.Int("removed", removed),
			logger.Int("remaining", sc.sessions.Len()))
	} else {
		sc.logger.Debug("no sessions to collect")
	}

	return removed
}
