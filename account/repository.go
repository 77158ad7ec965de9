package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kbukum/ledger/database"
)

var (
	// ErrUserNotFound is returned when no user has the requested username.
	ErrUserNotFound = errors.New("account: user not found")

	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("account: username taken")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// GormRepository stores users through gorm.
type GormRepository struct {
	db *database.DB
}

var _ Repository = (*GormRepository)(nil)

// NewRepository returns a gorm-backed Repository.
func NewRepository(db *database.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts u and fills in its ID. A username collision, including one
// lost to a concurrent registration, returns ErrUsernameTaken.
func (r *GormRepository) Create(ctx context.Context, u *User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if database.IsDuplicateError(err) {
		return ErrUsernameTaken
	}
	return err
}

// FindByUsername looks a user up by exact username.
func (r *GormRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
