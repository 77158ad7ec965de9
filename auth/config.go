package auth

import (
	"fmt"
	"time"

	"github.com/kbukum/ledger/auth/gate"
	"github.com/kbukum/ledger/auth/password"
	"github.com/kbukum/ledger/auth/throttle"
	"github.com/kbukum/ledger/auth/token"
	apperrors "github.com/kbukum/ledger/errors"
)

// Config holds all authentication configuration.
//
//	auth:
//	  secret: ${AUTH_SECRET}
//	  token_ttl: 24h
//	  cookie_name: token
//	  password:
//	    iterations: 100000
//	  throttle:
//	    max_attempts: 5
//	    window: 15m
type Config struct {
	// Secret signs session tokens. Required; supply it through AUTH_SECRET.
	Secret string `mapstructure:"secret"`

	// TokenTTL is both the token lifetime and the cookie max age (default: 24h).
	TokenTTL time.Duration `mapstructure:"token_ttl"`

	// CookieName is the session cookie name (default: token).
	CookieName string `mapstructure:"cookie_name"`

	Password password.Config `mapstructure:"password"`
	Throttle throttle.Config `mapstructure:"throttle"`
}

// ApplyDefaults sets defaults on the config and its sub-configs.
func (c *Config) ApplyDefaults() {
	if c.TokenTTL == 0 {
		c.TokenTTL = token.DefaultTTL
	}
	if c.CookieName == "" {
		c.CookieName = gate.DefaultCookieName
	}
	c.Password.ApplyDefaults()
	c.Throttle.ApplyDefaults()
}

// Validate returns a MISSING_SECRET AppError when no secret is configured.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return apperrors.MissingSecret()
	}
	tc := c.TokenConfig()
	if err := tc.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	if err := c.Throttle.Validate(); err != nil {
		return fmt.Errorf("auth.throttle: %w", err)
	}
	return nil
}

// TokenConfig returns the codec configuration.
func (c *Config) TokenConfig() token.Config {
	return token.Config{Secret: c.Secret, TTL: c.TokenTTL}
}

// GateConfig returns the cookie configuration. The cookie lives as long as the token.
func (c *Config) GateConfig() gate.Config {
	return gate.Config{CookieName: c.CookieName, MaxAge: c.TokenTTL}
}

// Describe returns a one-liner for the startup log. The secret is never included.
func (c *Config) Describe() string {
	tc := c.TokenConfig()
	throttling := "off"
	if !c.Throttle.Disabled {
		throttling = fmt.Sprintf("%d/%s", c.Throttle.MaxAttempts, c.Throttle.Window)
	}
	return fmt.Sprintf("%s cookie=%s pbkdf2=%d throttle=%s",
		tc.Describe(), c.CookieName, c.Password.Iterations, throttling)
}
