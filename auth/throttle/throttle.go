// Package throttle limits failed-login bursts per key.
//
// Every login attempt calls Allow; a successful login calls Reset. Once a key
// has used MaxAttempts inside Window, Allow reports false until the window
// passes.
package throttle

import (
	"context"
	"fmt"
	"time"
)

// Limiter counts attempts per key.
type Limiter interface {
	// Allow records an attempt and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)

	// Reset clears the attempts recorded for key.
	Reset(ctx context.Context, key string) error
}

// Config configures login throttling.
type Config struct {
	// Disabled turns throttling off entirely.
	Disabled bool `mapstructure:"disabled"`

	// MaxAttempts is the number of attempts allowed per window (default: 5).
	MaxAttempts int `mapstructure:"max_attempts"`

	// Window is the counting window (default: 15m).
	Window time.Duration `mapstructure:"window"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.Window == 0 {
		c.Window = 15 * time.Minute
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("throttle: max_attempts must be >= 1 (got: %d)", c.MaxAttempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("throttle: window must be positive (got: %s)", c.Window)
	}
	return nil
}

// Nop never limits.
type Nop struct{}

// Allow always permits the attempt.
func (Nop) Allow(context.Context, string) (bool, error) { return true, nil }

// Reset does nothing.
func (Nop) Reset(context.Context, string) error { return nil }
