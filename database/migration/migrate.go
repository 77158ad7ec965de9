// Package migration applies the embedded SQL migrations with golang-migrate.
//
// Files live in database/migrations/<driver>/ and follow the
// VERSION_name.up.sql / VERSION_name.down.sql pattern.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/kbukum/ledger/database/migrations"
)

// DriverFunc creates a migrate database driver from sql.DB.
type DriverFunc func(*sql.DB) (migratedb.Driver, error)

// driverFor returns the migrate driver for a database driver name.
func driverFor(name string) (DriverFunc, error) {
	switch name {
	case "sqlite":
		return func(db *sql.DB) (migratedb.Driver, error) {
			return sqlite3.WithInstance(db, &sqlite3.Config{})
		}, nil
	case "postgres":
		return func(db *sql.DB) (migratedb.Driver, error) {
			return pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("no migration driver for %q", name)
	}
}

// Up applies all pending migrations for driver. No pending migrations is not an error.
func Up(gormDB *gorm.DB, driver string) error {
	m, err := newMigrator(gormDB, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back every applied migration.
func Down(gormDB *gorm.DB, driver string) error {
	m, err := newMigrator(gormDB, driver)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version returns the current schema version and dirty flag.
func Version(gormDB *gorm.DB, driver string) (version uint, dirty bool, err error) {
	m, err := newMigrator(gormDB, driver)
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// newMigrator builds a migrator over the shared sql.DB.
// Callers must not call m.Close(); it would close the shared pool.
func newMigrator(gormDB *gorm.DB, driver string) (*migrate.Migrate, error) {
	driverFunc, err := driverFor(driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	dbDriver, err := driverFunc(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	sub, err := fs.Sub(migrations.FS, driver)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", driver, err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
