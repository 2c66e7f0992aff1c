package jobs

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle limits how often work for the same key may run.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewThrottle allows n executions per period for every key.
func NewThrottle(n int, period time.Duration) *Throttle {
	return &Throttle{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(n) / period.Seconds()),
		burst:    n,
	}
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[key] = l
	}
	return l
}

// Wait blocks until work for key may run or ctx is done.
func (t *Throttle) Wait(ctx context.Context, key string) error {
	return t.limiter(key).Wait(ctx)
}

// Allow reports whether work for key may run now without waiting.
func (t *Throttle) Allow(key string) bool {
	return t.limiter(key).Allow()
}
