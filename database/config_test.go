package database

import (
	"strings"
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantOpen int
		wantIdle int
	}{
		{"sqlite defaults to a single connection", Config{}, 1, 1},
		{"postgres keeps a pool", Config{Driver: DriverPostgres, DSN: "postgres://x"}, 25, 5},
		{"explicit values kept", Config{MaxOpenConns: 4, MaxIdleConns: 2}, 4, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.ApplyDefaults()
			if tc.cfg.MaxOpenConns != tc.wantOpen || tc.cfg.MaxIdleConns != tc.wantIdle {
				t.Errorf("pool = %d/%d, want %d/%d", tc.cfg.MaxOpenConns, tc.cfg.MaxIdleConns, tc.wantOpen, tc.wantIdle)
			}
			if err := tc.cfg.Validate(); err != nil {
				t.Errorf("defaults should validate: %v", err)
			}
		})
	}

	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Driver != DriverSQLite || cfg.DSN == "" {
		t.Errorf("expected sqlite with a default DSN, got %q %q", cfg.Driver, cfg.DSN)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		c := Config{Driver: DriverPostgres, DSN: "postgres://x"}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Driver = "mysql" }, "database driver must be"},
		{"missing dsn", func(c *Config) { c.DSN = "" }, "DSN is required"},
		{"idle over open", func(c *Config) { c.MaxIdleConns = 100 }, "max_idle_conns"},
		{"bad lifetime", func(c *Config) { c.ConnMaxLifetime = "forever" }, "conn_max_lifetime"},
		{"bad threshold", func(c *Config) { c.SlowQueryThreshold = "slow" }, "slow_query_threshold"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
