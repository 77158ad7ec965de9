package auth

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/ledger/errors"
)

func TestConfig_MissingSecret(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	err := cfg.Validate()
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeMissingSecret {
		t.Fatalf("expected MISSING_SECRET, got %v", err)
	}
}

func TestConfig_DefaultsAndDescribe(t *testing.T) {
	cfg := Config{Secret: "super-secret-value"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TokenTTL != 24*time.Hour || cfg.CookieName != "token" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if gc := cfg.GateConfig(); gc.MaxAge != cfg.TokenTTL {
		t.Errorf("cookie max age %s must equal token ttl %s", gc.MaxAge, cfg.TokenTTL)
	}

	desc := cfg.Describe()
	if strings.Contains(desc, "super-secret-value") {
		t.Fatalf("Describe leaked the secret: %s", desc)
	}
	if !strings.Contains(desc, "secret=set") {
		t.Errorf("expected secret=set in %q", desc)
	}
}
