// Package ratelimit implements an in-memory fixed-window request
// counter keyed by user ID or client IP. State is per-process; in a
// multi-instance deployment each instance enforces its own window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a fixed-window counter with periodic sweeping of expired
// windows.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*windowState
}

type windowState struct {
	count     int
	startedAt time.Time
}

// New creates a limiter allowing limit requests per window per key.
func New(limit int, window time.Duration) *Limiter {
	return NewWithClock(limit, window, time.Now)
}

// NewWithClock creates a limiter with an injectable clock for tests.
func NewWithClock(limit int, window time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		now:     now,
		mu:      sync.Mutex{},
		windows: make(map[string]*windowState),
	}
}

// Allow reports whether a request for the key fits in the current
// window, counting it if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	state, ok := l.windows[key]
	if !ok || now.Sub(state.startedAt) >= l.window {
		l.windows[key] = &windowState{count: 1, startedAt: now}
		return true
	}

	if state.count >= l.limit {
		return false
	}

	state.count++
	return true
}

// Sweep drops expired windows so the map does not grow with one entry
// per client forever.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, state := range l.windows {
		if now.Sub(state.startedAt) >= l.window {
			delete(l.windows, key)
		}
	}
}

// Start sweeps periodically until the context is cancelled.
func (l *Limiter) Start(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
