// Package alert throttles repeated care prompts and tracks negative streaks
// per client.
package alert

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle allows at most one event per interval for each key.
type Throttle struct {
	mu        sync.Mutex
	interval  time.Duration
	limiters  map[string]*rate.Limiter
	lastSweep time.Time
	now       func() time.Time
}

// NewThrottle returns a Throttle with the given minimum interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

// Allow reports whether key may fire now, and records it if so.
func (t *Throttle) Allow(key string) bool {
	return t.AllowAt(key, t.now())
}

// AllowAt is Allow with an explicit clock reading.
func (t *Throttle) AllowAt(key string, at time.Time) bool {
	if t.interval <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if at.Sub(t.lastSweep) >= t.interval {
		t.sweep(at)
	}
	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(t.interval), 1)
		t.limiters[key] = l
	}
	return l.AllowN(at, 1)
}

// sweep drops limiters that have refilled. A refilled limiter behaves like
// a fresh one, so forgetting it changes nothing for its key.
func (t *Throttle) sweep(at time.Time) {
	for key, l := range t.limiters {
		if l.TokensAt(at) >= 1 {
			delete(t.limiters, key)
		}
	}
	t.lastSweep = at
}
