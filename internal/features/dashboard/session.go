package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/crisiswatch/api/internal/pkg/logger"
	"github.com/crisiswatch/api/internal/pkg/observability"
)

// FetchFunc retrieves a fresh snapshot, typically by hitting the
// dashboard endpoint. It must respect the context deadline.
type FetchFunc func(ctx context.Context) (*Snapshot, error)

// Session is the polling loop a dashboard client runs: fetch on a fixed
// cadence, swap in complete snapshots, and keep showing the last good
// one when a fetch fails. At most one fetch is in flight at a time; a
// slow response makes the session skip ticks, not queue requests.
type Session struct {
	fetch    FetchFunc
	interval time.Duration
	timeout  time.Duration
	clock    clockwork.Clock
	metrics  *observability.Metrics

	inFlight atomic.Bool

	mu          sync.RWMutex
	current     *Snapshot
	lastSuccess time.Time
}

// SessionOption customizes a Session
type SessionOption func(*Session)

// WithClock injects a time source; tests pass a fake clock
func WithClock(clock clockwork.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithTimeout bounds each fetch attempt
func WithTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) { s.timeout = timeout }
}

// WithMetrics records poll outcomes and session lifecycle
func WithMetrics(metrics *observability.Metrics) SessionOption {
	return func(s *Session) { s.metrics = metrics }
}

func NewSession(fetch FetchFunc, interval time.Duration, opts ...SessionOption) *Session {
	s := &Session{
		fetch:    fetch,
		interval: interval,
		timeout:  10 * time.Second,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run polls until the context is cancelled. The first fetch happens
// immediately; after that the cadence is fixed regardless of how long
// individual fetches take.
func (s *Session) Run(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.SessionsActive.Inc()
		defer s.metrics.SessionsActive.Dec()
	}

	s.tryRefresh(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.tryRefresh(ctx)
		}
	}
}

// tryRefresh starts a fetch unless one is already running
func (s *Session) tryRefresh(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.inFlight.Store(false)
		s.refresh(ctx)
	}()
}

// refresh performs one fetch. On success the whole snapshot is
// replaced; on failure the previous one stays visible. This is the one
// place transient fetch errors are swallowed on purpose.
func (s *Session) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snapshot, err := s.fetch(fetchCtx)
	if err != nil {
		logger.Warn("dashboard refresh failed, keeping last snapshot: %v", err)
		if s.metrics != nil {
			s.metrics.DashboardPolls.WithLabelValues("error").Inc()
		}
		return
	}

	s.mu.Lock()
	s.current = snapshot
	s.lastSuccess = s.clock.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DashboardPolls.WithLabelValues("ok").Inc()
	}
}

// Snapshot returns the last successfully fetched snapshot, or nil if no
// fetch has succeeded yet.
func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Stale reports whether the displayed data has missed at least two
// refresh cycles.
func (s *Session) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastSuccess.IsZero() {
		return true
	}
	return s.clock.Now().Sub(s.lastSuccess) >= 2*s.interval
}
