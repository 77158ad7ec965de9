package account

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/ledger/auth/password"
	"github.com/kbukum/ledger/auth/throttle"
	"github.com/kbukum/ledger/auth/token"
	"github.com/kbukum/ledger/database"
	apperrors "github.com/kbukum/ledger/errors"
)

// countingHasher counts Verify calls on the wrapped hasher.
type countingHasher struct {
	password.Hasher
	verifies atomic.Int32
}

func (h *countingHasher) Verify(pw string, cred password.Credential) error {
	h.verifies.Add(1)
	return h.Hasher.Verify(pw, cred)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}
func (failingLimiter) Reset(context.Context, string) error { return nil }

type fixture struct {
	svc    *Service
	codec  *token.Codec
	hasher *countingHasher
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	hasher := &countingHasher{Hasher: password.NewPBKDF2Hasher(password.Config{Iterations: 1000})}
	codec, err := token.NewCodec(token.Config{Secret: "account-test-secret"})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	svc, err := NewService(NewRepository(database.OpenTestDB(t)), password.NewPool(hasher, 2), codec, opts...)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return &fixture{svc: svc, codec: codec, hasher: hasher}
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected %s, got %s", code, appErr.Code)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, "alice", "pw123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID <= 0 || user.Username != "alice" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordSalt == "" || user.PasswordHash == "pw123" {
		t.Errorf("credential not stored as hash: %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestRegister_FreshSaltPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.svc.Register(ctx, "alice", "same-password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.svc.Register(ctx, "bob", "same-password")
	if err != nil {
		t.Fatal(err)
	}
	if a.PasswordSalt == b.PasswordSalt || a.PasswordHash == b.PasswordHash {
		t.Error("same password must not produce the same stored credential")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Register(ctx, "alice", "another")
	requireCode(t, err, apperrors.ErrCodeDuplicateUsername)
}

func TestRegister_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw123"},
		{"short username", "al", "pw123"},
		{"bad characters", "alice smith", "pw123"},
		{"short password", "alice", "pw1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Register(context.Background(), tc.username, tc.password)
			requireCode(t, err, apperrors.ErrCodeInvalidInput)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered, err := f.svc.Register(ctx, "alice", "pw123")
	if err != nil {
		t.Fatal(err)
	}

	raw, user, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}
	claims, err := f.codec.Verify(raw)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.ID != registered.ID || claims.Username != "alice" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestRegisterLoginScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatalf("Register alice/pw123 failed: %v", err)
	}

	raw, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login alice/pw123 failed: %v", err)
	}
	claims, err := f.codec.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %q", claims.Username)
	}

	raw, user, err := f.svc.Login(ctx, "alice", "wrongpw", "10.0.0.1")
	requireCode(t, err, apperrors.ErrCodeInvalidCredentials)
	if raw != "" || user != nil {
		t.Error("no token may be issued for a wrong password")
	}
}

func TestLogin_OversizedInputIsInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"long username", strings.Repeat("a", 33), "pw123"},
		{"long password", "alice", strings.Repeat("x", 129)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.svc.Login(ctx, tc.username, tc.password, "10.0.0.1")
			requireCode(t, err, apperrors.ErrCodeInvalidCredentials)
			appErr, _ := apperrors.AsAppError(err)
			if len(appErr.Details) != 0 {
				t.Errorf("rejection must not name a field: %+v", appErr.Details)
			}
		})
	}
}

func TestLogin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatal(err)
	}

	var bodies []apperrors.ErrorResponse
	for _, tc := range []struct{ username, password string }{
		{"alice", "wrongpw"},
		{"mallory", "wrongpw"},
	} {
		before := f.hasher.verifies.Load()
		raw, user, err := f.svc.Login(ctx, tc.username, tc.password, "10.0.0.1")
		if raw != "" || user != nil {
			t.Errorf("%s: no token or user expected on failure", tc.username)
		}
		requireCode(t, err, apperrors.ErrCodeInvalidCredentials)
		if n := f.hasher.verifies.Load() - before; n != 1 {
			t.Errorf("%s: expected exactly one derivation, got %d", tc.username, n)
		}
		appErr, _ := apperrors.AsAppError(err)
		bodies = append(bodies, appErr.ToResponse())
	}
	if bodies[0].Error.Message != bodies[1].Error.Message || len(bodies[1].Error.Details) != 0 {
		t.Errorf("responses differ: %+v vs %+v", bodies[0], bodies[1])
	}
}

func TestLogin_Throttled(t *testing.T) {
	limiter := throttle.NewMemoryLimiter(throttle.Config{MaxAttempts: 2, Window: time.Minute})
	f := newFixture(t, WithLimiter(limiter))
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		_, _, err := f.svc.Login(ctx, "alice", "wrongpw", "10.0.0.1")
		requireCode(t, err, apperrors.ErrCodeInvalidCredentials)
	}

	before := f.hasher.verifies.Load()
	_, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1")
	requireCode(t, err, apperrors.ErrCodeRateLimited)
	if f.hasher.verifies.Load() != before {
		t.Error("throttled attempts must not reach the hasher")
	}

	if _, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.2"); err != nil {
		t.Errorf("another client should not be throttled: %v", err)
	}
}

func TestLogin_SuccessResetsThrottle(t *testing.T) {
	limiter := throttle.NewMemoryLimiter(throttle.Config{MaxAttempts: 2, Window: time.Minute})
	f := newFixture(t, WithLimiter(limiter))
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatal(err)
	}

	f.svc.Login(ctx, "alice", "wrongpw", "10.0.0.1")
	if _, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	f.svc.Login(ctx, "alice", "wrongpw", "10.0.0.1")
	if _, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1"); err != nil {
		t.Errorf("counter should have been reset by the earlier success: %v", err)
	}
}

func TestLogin_LimiterErrorAllows(t *testing.T) {
	f := newFixture(t, WithLimiter(failingLimiter{}))
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, "alice", "pw123"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1"); err != nil {
		t.Errorf("expected login to proceed when the limiter fails: %v", err)
	}
}

func TestLogin_CanceledContext(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Register(context.Background(), "alice", "pw123"); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := f.svc.Login(ctx, "alice", "pw123", "10.0.0.1"); err == nil {
		t.Error("expected an error for a canceled context")
	}
}
