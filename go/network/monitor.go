package network

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/kodekoding/slackmate/go/cron"
	plog "github.com/kodekoding/slackmate/go/log"
)

// Monitor caches the answer of another Checker and refreshes it on a schedule,
// so callers read the last known state instead of probing on every request.
type Monitor struct {
	checker   Checker
	mtx       sync.RWMutex
	known     bool
	connected bool
	checkedAt time.Time
}

func NewMonitor(checker Checker) *Monitor {
	return &Monitor{checker: checker}
}

// Refresh asks the underlying checker and stores the answer
func (m *Monitor) Refresh(ctx context.Context) (bool, error) {
	connected, err := m.checker.IsConnected(ctx)
	if err != nil {
		return false, errors.Wrap(err, "slackmate.go.network.Monitor.Refresh")
	}

	m.mtx.Lock()
	if m.known && m.connected != connected {
		plog.Ctx(ctx).Info().Bool("connected", connected).Msg("connectivity changed")
	}
	m.known = true
	m.connected = connected
	m.checkedAt = time.Now()
	m.mtx.Unlock()

	return connected, nil
}

// IsConnected returns the cached state, refreshing synchronously the first time
func (m *Monitor) IsConnected(ctx context.Context) (bool, error) {
	m.mtx.RLock()
	known, connected := m.known, m.connected
	m.mtx.RUnlock()

	if !known {
		return m.Refresh(ctx)
	}
	return connected, nil
}

// CheckedAt is the time of the last successful refresh
func (m *Monitor) CheckedAt() time.Time {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.checkedAt
}

// Schedule registers periodic refreshes on engine, e.g. pattern "@every 10s"
func (m *Monitor) Schedule(engine *cron.Engine, pattern string) error {
	return engine.RegisterScheduler(pattern, func(ctx context.Context) {
		if _, err := m.Refresh(ctx); err != nil {
			plog.Ctx(ctx).Warn().Err(err).Msg("failed to refresh connectivity")
		}
	})
}
