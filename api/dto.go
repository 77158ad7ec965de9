package api

import (
	"time"

	"github.com/kbukum/ledger/account"
	"github.com/kbukum/ledger/auth/token"
	"github.com/kbukum/ledger/ledger"
	"github.com/kbukum/ledger/server"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(u *account.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

type meResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newMeResponse(c *token.Claims) meResponse {
	resp := meResponse{ID: c.ID, Username: c.Username}
	if c.ExpiresAt != nil {
		resp.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return resp
}

type entryRequest struct {
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	OccurredOn  time.Time `json:"occurred_on"`
}

func (r entryRequest) input() ledger.Input {
	return ledger.Input{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		OccurredOn:  r.OccurredOn,
	}
}

type entryResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	OccurredOn  time.Time `json:"occurred_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newEntryResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		OccurredOn:  e.OccurredOn.UTC(),
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

type listMeta struct {
	server.PageMeta
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

func newListMeta(l ledger.Listing) listMeta {
	return listMeta{
		PageMeta: server.PageMeta{Total: l.Total, Limit: l.Page.Limit, Offset: l.Page.Offset},
		Income:   l.Summary.Income,
		Expense:  l.Summary.Expense,
		Balance:  l.Summary.Balance,
	}
}
