package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/ledger/auth/gate"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/server"
)

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, newUserResponse(user))
}

// login sets the session cookie on success. Failures never touch cookies.
func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	raw, user, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.gate.SetSession(c.Writer, raw)
	server.RespondOK(c, newUserResponse(user))
}

func (h *Handler) logout(c *gin.Context) {
	h.gate.ClearSession(c.Writer)
	server.RespondNoContent(c)
}

func (h *Handler) me(c *gin.Context) {
	claims, ok := gate.Claims(c)
	if !ok {
		server.RespondWithError(c, apperrors.Unauthenticated())
		return
	}
	server.RespondOK(c, newMeResponse(claims))
}
