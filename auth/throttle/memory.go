package throttle

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold is the key count above which Allow prunes idle keys.
const sweepThreshold = 1024

// MemoryLimiter is a per-process sliding-window limiter.
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	cfg      Config
	now      func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	cfg.ApplyDefaults()
	return &MemoryLimiter{
		attempts: make(map[string][]time.Time),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Allow records an attempt for key unless Window already holds MaxAttempts.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.cfg.Window)
	if len(l.attempts) > sweepThreshold {
		l.sweep(cutoff)
	}

	valid := filterByTime(l.attempts[key], cutoff)
	if len(valid) >= l.cfg.MaxAttempts {
		l.attempts[key] = valid
		return false, nil
	}
	l.attempts[key] = append(valid, now)
	return true, nil
}

// Reset forgets every attempt recorded for key.
func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.attempts, key)
	l.mu.Unlock()
	return nil
}

func (l *MemoryLimiter) sweep(cutoff time.Time) {
	for key, times := range l.attempts {
		valid := filterByTime(times, cutoff)
		if len(valid) == 0 {
			delete(l.attempts, key)
		} else {
			l.attempts[key] = valid
		}
	}
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}
