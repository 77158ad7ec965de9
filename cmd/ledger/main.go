// Command ledger serves the ledger HTTP API.
package main

import (
	"context"

	"github.com/kbukum/ledger/account"
	"github.com/kbukum/ledger/api"
	"github.com/kbukum/ledger/auth/gate"
	"github.com/kbukum/ledger/auth/password"
	"github.com/kbukum/ledger/auth/throttle"
	"github.com/kbukum/ledger/auth/token"
	"github.com/kbukum/ledger/bootstrap"
	"github.com/kbukum/ledger/config"
	"github.com/kbukum/ledger/database"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/ledger"
	"github.com/kbukum/ledger/logger"
	"github.com/kbukum/ledger/observability"
	"github.com/kbukum/ledger/redis"
	"github.com/kbukum/ledger/server"
	"github.com/kbukum/ledger/version"
)

func main() {
	var cfg Config
	if err := config.LoadConfig("ledger", &cfg); err != nil {
		logger.Fatal("Failed to load configuration", logger.ErrorFields("load_config", err))
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().String()
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeMissingSecret {
			logger.Fatal("auth.secret is not set; provide it through AUTH_SECRET")
		}
		logger.Fatal("Invalid configuration", logger.ErrorFields("validate_config", err))
	}

	if err := wire(app); err != nil {
		app.Logger.Fatal("Failed to register components", logger.ErrorFields("wire", err))
	}
	if err := app.Run(context.Background()); err != nil {
		app.Logger.Fatal("Application stopped with error", logger.ErrorFields("run", err))
	}
}

// wire registers infrastructure now and the HTTP layer once it is started.
func wire(app *bootstrap.App[*Config]) error {
	cfg := app.Cfg
	svc := observability.ServiceInfo{Name: cfg.Name, Version: cfg.Version, Environment: cfg.Environment}

	obs := observability.NewComponent(cfg.Observability, svc, app.Logger)
	db := database.NewComponent(cfg.Database, app.Logger)
	if err := app.RegisterComponent(obs); err != nil {
		return err
	}
	if err := app.RegisterComponent(db); err != nil {
		return err
	}

	var rc *redis.Component
	if cfg.Redis.Enabled {
		rc = redis.NewComponent(cfg.Redis, app.Logger)
		if err := app.RegisterComponent(rc); err != nil {
			return err
		}
	}

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		metrics, err := observability.NewGlobalAuthMetrics()
		if err != nil {
			return err
		}

		codec, err := token.NewCodec(cfg.Auth.TokenConfig(), token.WithRejectHook(func(r token.Reason) {
			metrics.RecordTokenRejected(context.Background(), string(r))
		}))
		if err != nil {
			return err
		}

		pool := password.NewPool(password.NewPBKDF2Hasher(cfg.Auth.Password), cfg.Auth.Password.Concurrency)
		accounts, err := account.NewService(
			account.NewRepository(db.DB()), pool, codec,
			account.WithLimiter(newLimiter(cfg, rc)),
			account.WithMetrics(metrics),
			account.WithLogger(a.Logger),
		)
		if err != nil {
			return err
		}
		entries := ledger.NewService(ledger.NewRepository(db.DB()), a.Logger)

		srv := server.New(cfg.Server, a.Logger)
		srv.ApplyMiddleware()
		srv.RegisterDefaultEndpoints(cfg.Name, a.Components.HealthAll)
		api.NewHandler(accounts, entries, gate.New(codec, cfg.Auth.GateConfig(), a.Logger)).Routes(srv.GinEngine())

		a.Logger.Info("Auth configured", logger.Fields("details", cfg.Auth.Describe()))
		return a.RegisterComponent(server.NewComponent(srv))
	})
	return nil
}

func newLimiter(cfg *Config, rc *redis.Component) throttle.Limiter {
	switch {
	case cfg.Auth.Throttle.Disabled:
		return throttle.Nop{}
	case rc != nil:
		return throttle.NewRedisLimiter(rc.Client(), cfg.Auth.Throttle)
	default:
		return throttle.NewMemoryLimiter(cfg.Auth.Throttle)
	}
}
