package token

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is the token lifetime. It matches the session cookie max age.
const DefaultTTL = 24 * time.Hour

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("token: signing secret is required")

// Config configures the token codec.
type Config struct {
	// Secret is the HMAC-SHA256 signing key.
	Secret string `mapstructure:"secret"`

	// TTL is the token lifetime, stored as exp = iat + TTL (default: 24h).
	TTL time.Duration `mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks that a secret is present and the TTL is positive.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	if c.TTL <= 0 {
		return fmt.Errorf("token: ttl must be positive (got: %s)", c.TTL)
	}
	return nil
}

// Describe returns a one-line summary safe for logs.
func (c *Config) Describe() string {
	secret := "unset"
	if c.Secret != "" {
		secret = "set"
	}
	return fmt.Sprintf("alg=HS256 ttl=%s secret=%s", c.TTL, secret)
}
