package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/kbukum/ledger/component"
	"github.com/kbukum/ledger/database/migration"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/logger"
)

func TestComponent_Lifecycle(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "c.db") + "?_foreign_keys=on"
	comp := NewComponent(Config{DSN: dsn, LogLevel: "silent"}, logger.NewNop())
	ctx := context.Background()

	if comp.DB() != nil {
		t.Error("DB() should be nil before Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s (%s)", h.Status, h.Message)
	}

	var tables int64
	comp.DB().GormDB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'entries')").Scan(&tables)
	if tables != 2 {
		t.Errorf("expected users and entries tables after migration, got %d", tables)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Errorf("second Stop() should be a no-op: %v", err)
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	db := OpenTestDB(t)
	if err := migration.Up(db.GormDB, DriverSQLite); err != nil {
		t.Fatalf("second Up should be a no-op: %v", err)
	}
	v, dirty, err := migration.Version(db.GormDB, DriverSQLite)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if v != 2 || dirty {
		t.Errorf("expected clean version 2, got %d (dirty=%v)", v, dirty)
	}
}

func TestDuplicateTranslation(t *testing.T) {
	db := OpenTestDB(t)
	ctx := context.Background()
	insert := func() error {
		return db.WithContext(ctx).Exec(
			"INSERT INTO users (username, password_hash, password_salt, created_at) VALUES (?, ?, ?, ?)",
			"alice", "h", "s", time.Now(),
		).Error
	}

	if err := insert(); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := insert()
	if !IsDuplicateError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if appErr := FromDatabase(err, "user"); appErr.Code != apperrors.ErrCodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}
}

func TestWithTransaction_Rollback(t *testing.T) {
	db := OpenTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec(
			"INSERT INTO users (username, password_hash, password_salt, created_at) VALUES (?, ?, ?, ?)",
			"bob", "h", "s", time.Now(),
		).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	db.WithContext(ctx).Table("users").Count(&count)
	if count != 0 {
		t.Errorf("expected rollback, found %d users", count)
	}
}

func TestFromDatabase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"not found", gorm.ErrRecordNotFound, apperrors.ErrCodeNotFound},
		{"connection", errors.New("dial tcp: connection refused"), apperrors.ErrCodeServiceUnavailable},
		{"other", errors.New("syntax error"), apperrors.ErrCodeDatabaseError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromDatabase(tc.err, "entry"); got.Code != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got.Code)
			}
		})
	}
	if FromDatabase(nil, "entry") != nil {
		t.Error("nil error should map to nil")
	}
}
