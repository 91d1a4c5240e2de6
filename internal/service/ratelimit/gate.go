package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive fetch attempts,
// process-wide with no per-keyword partitioning.
//
// The gate is advisory by default: the mutex protects the timestamp itself,
// not the check-fetch-record window, so two requests that both pass
// TryAcquire before either records may both proceed. That matches the
// intended best-effort throttle. Exclusive mode serializes the whole
// window for strict spacing.
type Gate struct {
	interval  time.Duration
	exclusive bool
	now       func() time.Time

	mu   sync.Mutex
	last time.Time

	fetchMu sync.Mutex
}

// Option configures a Gate.
type Option func(*Gate)

// New creates a gate with the given minimum interval. The last-attempt
// timestamp starts at the zero time, so the first acquisition never waits.
func New(interval time.Duration, opts ...Option) *Gate {
	g := &Gate{interval: interval, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithExclusive makes the gate hold a lock from acquisition until
// RecordAttempt, turning the throttle into a hard limit.
func WithExclusive() Option {
	return func(g *Gate) { g.exclusive = true }
}

// WithClock injects the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// TryAcquire returns how much longer the caller must wait before fetching.
// Zero means the interval has elapsed and the fetch may start now.
func (g *Gate) TryAcquire() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last.IsZero() {
		return 0
	}
	wait := g.interval - g.now().Sub(g.last)
	if wait < 0 {
		return 0
	}
	return wait
}

// RecordAttempt stores the attempt timestamp. Called after every fetch,
// successful or not. In exclusive mode this also releases the window lock
// taken by Wait, so the two must be paired.
func (g *Gate) RecordAttempt(now time.Time) {
	g.mu.Lock()
	g.last = now
	g.mu.Unlock()
	if g.exclusive {
		g.fetchMu.Unlock()
	}
}

// Wait blocks until the interval has elapsed since the last recorded
// attempt, or ctx is done. Returns the duration actually waited.
func (g *Gate) Wait(ctx context.Context) (time.Duration, error) {
	if g.exclusive {
		g.fetchMu.Lock()
	}
	wait := g.TryAcquire()
	if wait <= 0 {
		return 0, nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		if g.exclusive {
			g.fetchMu.Unlock()
		}
		return 0, ctx.Err()
	case <-timer.C:
		return wait, nil
	}
}
