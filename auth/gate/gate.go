// Package gate authenticates requests from the session cookie.
//
// A request is either Authenticated (claims stored in its context) or
// Unauthenticated. Every failure path looks the same to the caller.
package gate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ledger/auth/authctx"
	"github.com/kbukum/ledger/auth/token"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/logger"
)

// ErrUnauthenticated is returned by Authenticate for every failure.
var ErrUnauthenticated = errors.New("gate: unauthenticated")

// Verifier checks a raw token and returns its claims.
type Verifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Gate extracts and verifies session tokens.
type Gate struct {
	verifier Verifier
	cfg      Config
	log      *logger.Logger
}

// New creates a gate. cfg defaults are applied.
func New(v Verifier, cfg Config, log *logger.Logger) *Gate {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Gate{verifier: v, cfg: cfg, log: log.WithComponent("gate")}
}

// Authenticate returns the claims of the session cookie on r.
func (g *Gate) Authenticate(r *http.Request) (*token.Claims, error) {
	cookie, err := r.Cookie(g.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := g.verifier.Verify(cookie.Value)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// Require aborts unauthenticated requests with 401 and otherwise stores the
// claims in the request context.
func (g *Gate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.Authenticate(c.Request)
		if err != nil {
			g.log.WithContext(c.Request.Context()).Debug("Request rejected", logger.Fields(
				"path", c.Request.URL.Path,
			))
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.Unauthenticated().ToResponse())
			return
		}

		ctx := authctx.Set(c.Request.Context(), claims)
		ctx = logger.ContextWithUserID(ctx, claims.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Claims returns the claims stored by Require.
func Claims(c *gin.Context) (*token.Claims, bool) {
	return authctx.Get[*token.Claims](c.Request.Context())
}
