package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kbukum/ledger/database/migration"
	"github.com/kbukum/ledger/logger"
)

// OpenTestDB opens a migrated SQLite database under t.TempDir and closes it
// when the test ends.
func OpenTestDB(t testing.TB) *DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "ledger.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn, MaxRetries: 1, LogLevel: "silent"}, logger.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := migration.Up(db.GormDB, DriverSQLite); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
