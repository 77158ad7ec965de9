// Package token issues and verifies HS256 session tokens.
//
// A token is header.payload.signature, each part base64url without padding.
// The payload holds Claims plus iat and exp. Verification failures of any
// kind collapse into ErrInvalidToken; the underlying Reason is only reported
// to an optional reject hook.
//
// Usage:
//
//	codec, err := token.NewCodec(token.Config{Secret: secret})
//	raw, err := codec.Issue(token.Claims{ID: 1, Username: "alice"})
//	claims, err := codec.Verify(raw)
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is the only error Verify returns.
	ErrInvalidToken = errors.New("token: invalid")

	// ErrInvalidClaims is returned by Issue for claims Verify would reject.
	ErrInvalidClaims = errors.New("token: invalid claims")
)

// Reason classifies a rejected token for metrics and logs.
type Reason string

const (
	ReasonMalformed Reason = "malformed"
	ReasonSignature Reason = "signature"
	ReasonExpired   Reason = "expired"
	ReasonClaims    Reason = "claims"
)

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// WithRejectHook registers fn to be called with the reason of every rejection.
func WithRejectHook(fn func(Reason)) Option {
	return func(c *Codec) { c.onReject = fn }
}

// Codec signs and verifies tokens with a fixed secret. Safe for concurrent use.
type Codec struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	onReject func(Reason)
	parser   *jwt.Parser
}

// NewCodec creates a codec. The secret is copied; later changes to cfg have no
// effect.
func NewCodec(cfg Config, opts ...Option) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Codec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs claims with iat set to now and exp to now + TTL. Any registered
// claims on the argument are replaced. Claims without a positive ID or a
// username are refused with ErrInvalidClaims.
func (c *Codec) Issue(claims Claims) (string, error) {
	if err := claims.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}
	now := c.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks structure, signature, expiry and identity fields of raw.
func (c *Codec) Verify(raw string) (*Claims, error) {
	if !wellFormed(raw) {
		return nil, c.reject(ReasonMalformed)
	}

	claims := &Claims{}
	tok, err := c.parser.ParseWithClaims(raw, claims, c.keyFunc)
	if err != nil {
		return nil, c.reject(classify(err))
	}
	if !tok.Valid {
		return nil, c.reject(ReasonSignature)
	}
	return claims, nil
}

func (c *Codec) keyFunc(*jwt.Token) (interface{}, error) {
	return c.secret, nil
}

func (c *Codec) reject(reason Reason) error {
	if c.onReject != nil {
		c.onReject(reason)
	}
	return ErrInvalidToken
}

// wellFormed reports whether raw has exactly three non-empty segments.
func wellFormed(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	default:
		return ReasonClaims
	}
}
