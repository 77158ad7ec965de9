// Package account registers users and logs them in.
//
// Passwords are stored only as PBKDF2 credentials. Login failures for an
// unknown username and for a wrong password are indistinguishable to the
// caller, both in the returned error and in the work performed.
package account

import (
	"time"

	"github.com/kbukum/ledger/auth/password"
)

// User is a registered account.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username"`
	PasswordHash string    `gorm:"column:password_hash"`
	PasswordSalt string    `gorm:"column:password_salt"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName maps User to the users table.
func (User) TableName() string { return "users" }

// Credential returns the stored password credential.
func (u *User) Credential() password.Credential {
	return password.Credential{Hash: u.PasswordHash, Salt: u.PasswordSalt}
}
