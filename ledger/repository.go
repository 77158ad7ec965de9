package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kbukum/ledger/database"
)

// ErrEntryNotFound is returned when the entry does not exist for the user.
var ErrEntryNotFound = errors.New("ledger: entry not found")

// Repository persists entries. Every method filters by user id.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, userID, id int64) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, page Page) (Listing, error)
}

// GormRepository stores entries through gorm.
type GormRepository struct {
	db *database.DB
}

var _ Repository = (*GormRepository)(nil)

// NewRepository returns a gorm-backed Repository.
func NewRepository(db *database.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *GormRepository) Get(ctx context.Context, userID, id int64) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update writes the editable columns of e. The row must belong to e.UserID.
func (r *GormRepository) Update(ctx context.Context, e *Entry) error {
	res := r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Select("description", "amount", "category", "occurred_on", "updated_at").
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, userID, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// List reads the page, the total count and the summary in one transaction so
// the three agree with each other.
func (r *GormRepository) List(ctx context.Context, userID int64, page Page) (Listing, error) {
	listing := Listing{Page: page, Entries: []Entry{}}
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		scoped := func() *gorm.DB { return tx.Model(&Entry{}).Where("user_id = ?", userID) }

		if err := scoped().Count(&listing.Total).Error; err != nil {
			return err
		}
		if err := scoped().
			Order("occurred_on DESC").Order("id DESC").
			Limit(page.Limit).Offset(page.Offset).
			Find(&listing.Entries).Error; err != nil {
			return err
		}
		return scoped().Select(
			"COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income, " +
				"COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS expense",
		).Scan(&listing.Summary).Error
	})
	if err != nil {
		return Listing{}, err
	}
	listing.Summary.Balance = listing.Summary.Income - listing.Summary.Expense
	return listing, nil
}
