package gate

import "time"

const (
	DefaultCookieName = "token"
	DefaultMaxAge     = 24 * time.Hour
)

// Config configures the session cookie.
type Config struct {
	// CookieName is the cookie that carries the token (default: token).
	CookieName string `mapstructure:"cookie_name"`

	// MaxAge is the cookie lifetime (default: 24h). Keep it equal to the token TTL.
	MaxAge time.Duration `mapstructure:"max_age"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.MaxAge == 0 {
		c.MaxAge = DefaultMaxAge
	}
}
