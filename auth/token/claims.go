package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session identity carried by a token.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Validate is called by the parser after the registered claims pass.
func (c *Claims) Validate() error {
	if c.ID <= 0 {
		return errors.New("id must be positive")
	}
	if c.Username == "" {
		return errors.New("username is required")
	}
	return nil
}
