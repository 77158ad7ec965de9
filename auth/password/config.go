package password

import (
	"fmt"
	"runtime"
)

// Minimums below which stored credentials would be too cheap to attack.
const (
	MinIterations = 100_000
	MinKeyLength  = 32
	MinSaltLength = 16
)

// Config configures PBKDF2 password hashing.
type Config struct {
	// Iterations is the PBKDF2 iteration count (default: 100000).
	Iterations int `mapstructure:"iterations"`

	// KeyLength is the derived key size in bytes (default: 32).
	KeyLength int `mapstructure:"key_length"`

	// SaltLength is the size of freshly generated salts in bytes (default: 16).
	SaltLength int `mapstructure:"salt_length"`

	// Concurrency caps simultaneous derivations (default: GOMAXPROCS).
	Concurrency int `mapstructure:"concurrency"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Iterations == 0 {
		c.Iterations = MinIterations
	}
	if c.KeyLength == 0 {
		c.KeyLength = MinKeyLength
	}
	if c.SaltLength == 0 {
		c.SaltLength = MinSaltLength
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Iterations < MinIterations {
		return fmt.Errorf("iterations must be >= %d (got: %d)", MinIterations, c.Iterations)
	}
	if c.KeyLength < MinKeyLength {
		return fmt.Errorf("key_length must be >= %d (got: %d)", MinKeyLength, c.KeyLength)
	}
	if c.SaltLength < MinSaltLength {
		return fmt.Errorf("salt_length must be >= %d (got: %d)", MinSaltLength, c.SaltLength)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got: %d)", c.Concurrency)
	}
	return nil
}
