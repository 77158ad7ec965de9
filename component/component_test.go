package component

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/ledger/logger"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func newRegistry() *Registry {
	return NewRegistry(logger.NewNop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newRegistry()
	if err := r.Register(&mockComponent{name: "database"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "database"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestStartStopOrder(t *testing.T) {
	r := newRegistry()
	var started, stopped []string
	for _, name := range []string{"database", "redis", "http-server"} {
		r.Register(&mockComponent{name: name, startOrder: &started, stopOrder: &stopped})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	wantStart := []string{"database", "redis", "http-server"}
	wantStop := []string{"http-server", "redis", "database"}
	for i := range wantStart {
		if started[i] != wantStart[i] {
			t.Errorf("start[%d]: expected %s, got %s", i, wantStart[i], started[i])
		}
		if stopped[i] != wantStop[i] {
			t.Errorf("stop[%d]: expected %s, got %s", i, wantStop[i], stopped[i])
		}
	}
}

func TestStartAll_FailureStopsOnlyStarted(t *testing.T) {
	r := newRegistry()
	var started, stopped []string
	r.Register(&mockComponent{name: "database", startOrder: &started, stopOrder: &stopped})
	r.Register(&mockComponent{name: "redis", startErr: errors.New("dial tcp: refused"), startOrder: &started, stopOrder: &stopped})
	r.Register(&mockComponent{name: "http-server", startOrder: &started, stopOrder: &stopped})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if len(started) != 2 {
		t.Fatalf("expected start to halt at redis, got %v", started)
	}

	r.StopAll(context.Background())
	if len(stopped) != 1 || stopped[0] != "database" {
		t.Errorf("expected only database to be stopped, got %v", stopped)
	}
}

func TestStopAll_CollectsErrors(t *testing.T) {
	r := newRegistry()
	stopErr := errors.New("close failed")
	r.Register(&mockComponent{name: "database", stopErr: stopErr})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, stopErr) {
		t.Errorf("expected joined stop error, got %v", err)
	}
}

func TestHealthAllAndGet(t *testing.T) {
	r := newRegistry()
	r.Register(&mockComponent{name: "database", health: Health{Name: "database", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "redis", health: Health{Name: "redis", Status: StatusUnhealthy, Message: "ping failed"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected redis unhealthy, got %s", results[1].Status)
	}
	if r.Get("redis") == nil {
		t.Error("expected Get to find redis")
	}
	if r.Get("kafka") != nil {
		t.Error("expected nil for unknown component")
	}
}

func TestStartAll_SkipsStarted(t *testing.T) {
	r := newRegistry()
	var started []string
	r.Register(&mockComponent{name: "database", startOrder: &started})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.Register(&mockComponent{name: "http-server", startOrder: &started})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(started) != 2 || started[1] != "http-server" {
		t.Errorf("expected database once then http-server, got %v", started)
	}
}
