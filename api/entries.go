package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/ledger/auth/gate"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/ledger"
	"github.com/kbukum/ledger/server"
	"github.com/kbukum/ledger/validation"
)

func userID(c *gin.Context) (int64, bool) {
	claims, ok := gate.Claims(c)
	if !ok {
		server.RespondWithError(c, apperrors.Unauthenticated())
		return 0, false
	}
	return claims.ID, true
}

func (h *Handler) listEntries(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	limit, err := validation.ParseIntDefault("limit", c.Query("limit"), ledger.DefaultLimit)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	offset, err := validation.ParseIntDefault("offset", c.Query("offset"), 0)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	listing, err := h.entries.List(c.Request.Context(), uid, ledger.Page{Limit: limit, Offset: offset})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	data := make([]entryResponse, 0, len(listing.Entries))
	for i := range listing.Entries {
		data = append(data, newEntryResponse(&listing.Entries[i]))
	}
	server.RespondOKWithMeta(c, data, newListMeta(listing))
}

func (h *Handler) createEntry(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req entryRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.entries.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, newEntryResponse(e))
}

func (h *Handler) getEntry(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}
	e, err := h.entries.Get(c.Request.Context(), uid, id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, newEntryResponse(e))
}

func (h *Handler) updateEntry(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}
	var req entryRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.entries.Update(c.Request.Context(), uid, id, req.input())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, newEntryResponse(e))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}
	if err := h.entries.Delete(c.Request.Context(), uid, id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
