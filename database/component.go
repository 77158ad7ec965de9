package database

import (
	"context"
	"fmt"

	"github.com/kbukum/ledger/component"
	"github.com/kbukum/ledger/database/migration"
	"github.com/kbukum/ledger/logger"
)

// Component opens the database on Start and applies the embedded migrations.
type Component struct {
	db  *DB
	cfg Config
	log *logger.Logger
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a database component for the registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("database")}
}

// DB returns the opened database, or nil before Start.
func (c *Component) DB() *DB { return c.db }

func (c *Component) Name() string { return "database" }

// Start connects and, unless disabled, migrates the schema to the latest version.
func (c *Component) Start(ctx context.Context) error {
	db, err := Open(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}

	if !c.cfg.SkipMigrations {
		if err := migration.Up(db.GormDB, c.cfg.Driver); err != nil {
			_ = db.Close()
			return fmt.Errorf("database migrate: %w", err)
		}
		if v, _, err := migration.Version(db.GormDB, c.cfg.Driver); err == nil {
			c.log.Info("Schema up to date", logger.Fields("version", v))
		}
	}

	c.db = db
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.db == nil {
		h.Status, h.Message = component.StatusUnhealthy, "database not initialized"
		return h
	}
	if err := c.db.PingContext(ctx); err != nil {
		h.Status, h.Message = component.StatusUnhealthy, fmt.Sprintf("ping failed: %v", err)
	}
	return h
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("%s pool=%d/%d", c.cfg.Driver, c.cfg.MaxOpenConns, c.cfg.MaxIdleConns)
	if c.cfg.SkipMigrations {
		details += " migrations=off"
	}
	return component.Description{Name: "Database", Type: "database", Details: details}
}
