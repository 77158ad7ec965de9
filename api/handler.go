// Package api exposes the account and ledger services over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/ledger/account"
	"github.com/kbukum/ledger/auth/gate"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/ledger"
	"github.com/kbukum/ledger/server"
	"github.com/kbukum/ledger/server/middleware"
	"github.com/kbukum/ledger/validation"
)

// authBodyLimit caps credential payloads well below the server-wide limit.
const authBodyLimit = "4KB"

// Handler serves the /api routes.
type Handler struct {
	accounts *account.Service
	entries  *ledger.Service
	gate     *gate.Gate
}

// NewHandler creates a Handler.
func NewHandler(accounts *account.Service, entries *ledger.Service, g *gate.Gate) *Handler {
	return &Handler{accounts: accounts, entries: entries, gate: g}
}

// Routes mounts every route under /api. Entry routes and /auth/me sit behind
// the session gate.
func (h *Handler) Routes(r gin.IRouter) {
	api := r.Group("/api")

	auth := api.Group("/auth", middleware.GinWrap(middleware.BodySizeLimit(authBodyLimit)))
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/logout", h.logout)
	auth.GET("/me", h.gate.Require(), h.me)

	entries := api.Group("/entries", h.gate.Require())
	entries.GET("", h.listEntries)
	entries.POST("", h.createEntry)
	entries.GET("/:id", h.getEntry)
	entries.PUT("/:id", h.updateEntry)
	entries.DELETE("/:id", h.deleteEntry)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body must be a valid JSON object."))
		return false
	}
	return true
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return 0, false
	}
	return id, true
}
