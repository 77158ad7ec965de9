package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/ledger/component"
	"github.com/kbukum/ledger/config"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/logger"
)

type testConfig struct {
	config.ServiceConfig
	Secret string
}

func (c *testConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if c.Secret == "" {
		return apperrors.MissingSecret()
	}
	return nil
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health { return m.health }

func newTestConfig() *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{Name: "ledger", Version: "1.0.0", Environment: "development"},
		Secret:        "s3cret",
	}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithLogger(logger.NewNop())}, opts...)
	app, err := NewApp(newTestConfig(), opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func healthy(name string) *mockComponent {
	return &mockComponent{name: name, health: component.Health{Name: name, Status: component.StatusHealthy}}
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "ledger" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %s@%s", app.Name, app.Version)
	}
	if app.Components == nil || app.Logger == nil {
		t.Fatal("expected registry and logger")
	}
	if app.Cfg.Secret != "s3cret" {
		t.Errorf("expected typed config, got %+v", app.Cfg)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default 15s timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewApp_MissingSecret(t *testing.T) {
	cfg := newTestConfig()
	cfg.Secret = ""
	_, err := NewApp(cfg, WithLogger(logger.NewNop()))

	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeMissingSecret {
		t.Fatalf("expected MISSING_SECRET, got %v", err)
	}
}

func TestNewApp_InvalidServiceConfig(t *testing.T) {
	cfg := newTestConfig()
	cfg.Name = ""
	if _, err := NewApp(cfg, WithLogger(logger.NewNop())); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(30*time.Second))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", app.gracefulTimeout)
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded", component.StatusDegraded, true},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			app.RegisterComponent(&mockComponent{name: "redis", health: component.Health{Name: "redis", Status: tc.status}})
			if err := app.ReadyCheck(context.Background()); (err != nil) != tc.wantErr {
				t.Errorf("ReadyCheck error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	app := newTestApp(t)
	db := healthy("database")
	app.RegisterComponent(db)

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(context.Context) error { order = append(order, "ready"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"start", "configure", "ready", "task", "stop"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if !db.started || !db.stopped {
		t.Errorf("expected database started and stopped, got %+v", db)
	}
}

func TestRunTask_ReturnsTaskError(t *testing.T) {
	app := newTestApp(t)
	taskErr := errors.New("import failed")
	if err := app.RunTask(context.Background(), func(context.Context) error { return taskErr }); !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StartFailureStopsStarted(t *testing.T) {
	app := newTestApp(t)
	db := healthy("database")
	redis := &mockComponent{name: "redis", startErr: errors.New("connection refused")}
	app.RegisterComponent(db)
	app.RegisterComponent(redis)

	called := false
	err := app.RunTask(context.Background(), func(context.Context) error { called = true; return nil })
	if err == nil {
		t.Fatal("expected start error")
	}
	if called {
		t.Error("task must not run after a failed start")
	}
	if !db.stopped {
		t.Error("expected database to be stopped after redis failed")
	}
	if redis.stopped {
		t.Error("redis never started and must not be stopped")
	}
}

func TestRunTask_ConfigureErrorAborts(t *testing.T) {
	app := newTestApp(t)
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		return errors.New("wiring failed")
	})
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Error("expected configure error")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app := newTestApp(t)
	db := healthy("database")
	app.RegisterComponent(db)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !db.stopped {
		t.Error("expected graceful stop after cancel")
	}
}

func TestShutdown_ReportsStopError(t *testing.T) {
	app := newTestApp(t)
	stopErr := errors.New("close failed")
	app.RegisterComponent(&mockComponent{name: "database", stopErr: stopErr})
	app.Components.StartAll(context.Background())

	if err := app.Shutdown(context.Background()); !errors.Is(err, stopErr) {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTask_StartsComponentsRegisteredDuringConfigure(t *testing.T) {
	app := newTestApp(t)
	srv := healthy("http-server")
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		return a.RegisterComponent(srv)
	})
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !srv.started || !srv.stopped {
		t.Errorf("expected late component to be started and stopped, got %+v", srv)
	}
}
