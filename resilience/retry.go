package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Backoff controls how Retry spaces its attempts.
type Backoff struct {
	// Attempts is the total number of tries, including the first (default: 3).
	Attempts int

	// Initial is the delay after the first failure (default: 500ms).
	Initial time.Duration

	// Max caps any single delay (default: 10s).
	Max time.Duration

	// Factor multiplies the delay after each failure (default: 2).
	Factor float64

	// Jitter spreads each delay by up to this fraction either way.
	Jitter float64

	// RetryIf reports whether err is worth another attempt. Context errors
	// are never retried.
	RetryIf func(err error) bool

	// OnRetry is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration)
}

func (b *Backoff) applyDefaults() {
	if b.Attempts <= 0 {
		b.Attempts = 3
	}
	if b.Initial <= 0 {
		b.Initial = 500 * time.Millisecond
	}
	if b.Max <= 0 {
		b.Max = 10 * time.Second
	}
	if b.Factor < 1 {
		b.Factor = 2
	}
}

// Delay returns the wait after the given failed attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	b.applyDefaults()
	d := float64(b.Initial) * math.Pow(b.Factor, float64(attempt-1))
	if b.Jitter > 0 {
		d += (rand.Float64()*2 - 1) * d * b.Jitter
	}
	if d > float64(b.Max) {
		d = float64(b.Max)
	}
	if d <= 0 {
		d = float64(b.Initial)
	}
	return time.Duration(d)
}

// Retry calls fn until it succeeds, fails with a non-retryable error, the
// attempts run out or ctx is done. It returns the last error from fn, or the
// context error if the wait was cut short.
func Retry(ctx context.Context, b Backoff, fn func(ctx context.Context) error) error {
	b.applyDefaults()

	var err error
	for attempt := 1; attempt <= b.Attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if isContextErr(err) || (b.RetryIf != nil && !b.RetryIf(err)) {
			return err
		}
		if attempt == b.Attempts {
			break
		}

		wait := b.Delay(attempt)
		if b.OnRetry != nil {
			b.OnRetry(attempt, err, wait)
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
