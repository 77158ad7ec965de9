package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newJSONLogger(buf *bytes.Buffer) *Logger {
	cfg := &Config{Level: "debug", Format: "json", Output: "stdout"}
	return NewWithWriter(cfg, "ledger", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json", Output: "stdout"}
	if l := New(cfg, "test"); l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutput_FieldsAndService(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf).Info("User registered", Fields(FieldUserID, 7, FieldUsername, "alice"))

	m := decodeLine(t, &buf)
	if m["message"] != "User registered" {
		t.Errorf("unexpected message %v", m["message"])
	}
	if m["service"] != "ledger" {
		t.Errorf("expected service=ledger, got %v", m["service"])
	}
	if m[FieldUsername] != "alice" {
		t.Errorf("expected username=alice, got %v", m[FieldUsername])
	}
	if m[FieldUserID] != float64(7) {
		t.Errorf("expected user_id=7, got %v", m[FieldUserID])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf).WithComponent("gate").Warn("Session rejected")

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "gate" {
		t.Errorf("expected component=gate, got %v", m[FieldComponent])
	}
	if m["level"] != "warn" {
		t.Errorf("expected level=warn, got %v", m["level"])
	}
}

func TestWithContext_RequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, 42)

	newJSONLogger(&buf).WithContext(ctx).Info("hello")

	m := decodeLine(t, &buf)
	if m[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id=req-1, got %v", m[FieldRequestID])
	}
	if m[FieldUserID] != "42" {
		t.Errorf("expected user_id=42, got %v", m[FieldUserID])
	}
	if RequestIDFromContext(ctx) != "req-1" {
		t.Error("RequestIDFromContext should return the stored id")
	}
}

func TestWithContext_Empty(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf).WithContext(context.Background()).Info("hello")

	m := decodeLine(t, &buf)
	if _, ok := m[FieldRequestID]; ok {
		t.Error("request_id should be absent")
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestConfig_ApplyDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded", Fields("k", "v"))
	l.WithComponent("x").Error("discarded")
}
