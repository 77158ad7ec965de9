// Package ledger stores income and expense entries for a user.
//
// Amounts are signed integers in minor currency units: positive for income,
// negative for expense. Every operation is scoped to one user; entries of
// other users are indistinguishable from missing ones.
package ledger

import (
	"strings"
	"time"
)

// Entry is a single ledger line.
type Entry struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id"`
	Description string    `gorm:"column:description"`
	Amount      int64     `gorm:"column:amount"`
	Category    string    `gorm:"column:category"`
	OccurredOn  time.Time `gorm:"column:occurred_on"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName maps Entry to the entries table.
func (Entry) TableName() string { return "entries" }

// Input is the user-editable part of an entry.
type Input struct {
	Description string    `json:"description" validate:"required,max=200"`
	Amount      int64     `json:"amount" validate:"ne=0"`
	Category    string    `json:"category" validate:"max=64"`
	OccurredOn  time.Time `json:"occurred_on" validate:"required"`
}

func (in Input) normalized() Input {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.OccurredOn = in.OccurredOn.UTC()
	return in
}

func (in Input) apply(e *Entry) {
	e.Description = in.Description
	e.Amount = in.Amount
	e.Category = in.Category
	e.OccurredOn = in.OccurredOn
}

// Summary totals a user's entries. Expense is reported as a positive number.
type Summary struct {
	Income  int64 `gorm:"column:income"`
	Expense int64 `gorm:"column:expense"`
	Balance int64 `gorm:"-"`
}

// Page selects a window of a listing.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Listing is one page of entries plus totals over all of the user's entries.
type Listing struct {
	Entries []Entry
	Total   int64
	Page    Page
	Summary Summary
}
