package account

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/ledger/auth/password"
	"github.com/kbukum/ledger/auth/throttle"
	"github.com/kbukum/ledger/auth/token"
	"github.com/kbukum/ledger/database"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/logger"
	"github.com/kbukum/ledger/observability"
	"github.com/kbukum/ledger/validation"
)

// Issuer signs session tokens.
type Issuer interface {
	Issue(claims token.Claims) (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLimiter throttles login attempts per username and client.
func WithLimiter(l throttle.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithMetrics records login, registration and hashing metrics.
func WithMetrics(m *observability.AuthMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l.WithComponent("account") }
}

// Service implements registration and login.
type Service struct {
	repo      Repository
	passwords *password.Pool
	tokens    Issuer
	limiter   throttle.Limiter
	metrics   *observability.AuthMetrics
	log       *logger.Logger

	// decoy is verified against when the username is unknown.
	decoy password.Credential
}

// NewService creates a Service. It derives one throwaway credential up front
// so unknown-user logins cost the same PBKDF2 work as real ones.
func NewService(repo Repository, passwords *password.Pool, tokens Issuer, opts ...Option) (*Service, error) {
	s := &Service{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		limiter:   throttle.Nop{},
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	decoy, err := passwords.Hash(context.Background(), "decoy-password", "")
	if err != nil {
		return nil, err
	}
	s.decoy = decoy
	return s, nil
}

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
	Password string `json:"password" validate:"required,min=5,max=128"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Longest credentials Register accepts; longer login input cannot match.
const (
	maxUsernameLen = 32
	maxPasswordLen = 128
)

// Register creates a user with a freshly salted credential.
func (s *Service) Register(ctx context.Context, username, pw string) (user *User, err error) {
	ctx, span := observability.StartSpan(ctx, "account.Register")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.Validate(registerInput{Username: username, Password: pw}); err != nil {
		s.metrics.RecordRegister(ctx, observability.OutcomeInvalid)
		return nil, err
	}

	cred, err := s.hash(ctx, pw)
	if err != nil {
		s.metrics.RecordRegister(ctx, observability.OutcomeError)
		return nil, err
	}

	user = &User{Username: username, PasswordHash: cred.Hash, PasswordSalt: cred.Salt}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			s.metrics.RecordRegister(ctx, observability.OutcomeDuplicate)
			return nil, apperrors.DuplicateUsername(username)
		}
		s.metrics.RecordRegister(ctx, observability.OutcomeError)
		return nil, database.FromDatabase(err, "user")
	}

	s.metrics.RecordRegister(ctx, observability.OutcomeSuccess)
	s.log.WithContext(ctx).Info("User registered", logger.Fields(
		logger.FieldUserID, user.ID,
		logger.FieldUsername, user.Username,
	))
	return user, nil
}

// Login checks the credentials and issues a session token. clientKey
// identifies the caller for throttling (typically the client IP).
//
// Unknown username and wrong password both return InvalidCredentials, and
// both run exactly one password derivation.
func (s *Service) Login(ctx context.Context, username, pw, clientKey string) (raw string, user *User, err error) {
	ctx, span := observability.StartSpan(ctx, "account.Login")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.Validate(loginInput{Username: username, Password: pw}); err != nil {
		s.metrics.RecordLogin(ctx, observability.OutcomeInvalid)
		return "", nil, err
	}

	key := throttleKey(username, clientKey)
	if !s.allow(ctx, key) {
		s.metrics.RecordLogin(ctx, observability.OutcomeThrottled)
		s.log.WithContext(ctx).Warn("Login throttled", logger.Fields(
			logger.FieldUsername, username,
			logger.FieldClientIP, clientKey,
		))
		return "", nil, apperrors.RateLimited()
	}

	if utf8.RuneCountInString(username) > maxUsernameLen || utf8.RuneCountInString(pw) > maxPasswordLen {
		return "", nil, s.rejectLogin(ctx, username, "oversized_input")
	}

	user, err = s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		if verr := s.verify(ctx, pw, s.decoy); isCanceled(verr) {
			return "", nil, verr
		}
		return "", nil, s.rejectLogin(ctx, username, "unknown_user")
	case err != nil:
		s.metrics.RecordLogin(ctx, observability.OutcomeError)
		return "", nil, database.FromDatabase(err, "user")
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))

	if err := s.verify(ctx, pw, user.Credential()); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", nil, s.rejectLogin(ctx, username, "wrong_password")
		}
		if isCanceled(err) {
			return "", nil, err
		}
		s.metrics.RecordLogin(ctx, observability.OutcomeError)
		return "", nil, apperrors.Internal(err)
	}

	raw, err = s.tokens.Issue(token.Claims{ID: user.ID, Username: user.Username})
	if err != nil {
		s.metrics.RecordLogin(ctx, observability.OutcomeError)
		return "", nil, apperrors.Internal(err)
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.log.WithContext(ctx).Warn("Throttle reset failed", logger.ErrorFields("throttle_reset", err))
	}
	s.metrics.RecordLogin(ctx, observability.OutcomeSuccess)
	s.log.WithContext(ctx).Info("User logged in", logger.Fields(
		logger.FieldUserID, user.ID,
		logger.FieldUsername, user.Username,
	))
	return raw, user, nil
}

func (s *Service) rejectLogin(ctx context.Context, username, reason string) error {
	s.metrics.RecordLogin(ctx, observability.OutcomeInvalid)
	s.log.WithContext(ctx).Info("Login rejected", logger.Fields(
		logger.FieldUsername, username,
		logger.FieldReason, reason,
	))
	return apperrors.InvalidCredentials()
}

// allow reports whether key may attempt a login. Limiter errors are logged
// and the attempt is allowed.
func (s *Service) allow(ctx context.Context, key string) bool {
	ok, err := s.limiter.Allow(ctx, key)
	if err != nil {
		s.log.WithContext(ctx).Warn("Throttle check failed, allowing attempt", logger.ErrorFields("throttle_allow", err))
		return true
	}
	return ok
}

func (s *Service) hash(ctx context.Context, pw string) (password.Credential, error) {
	start := time.Now()
	cred, err := s.passwords.Hash(ctx, pw, "")
	s.metrics.RecordHash(ctx, "hash", time.Since(start))
	if err != nil {
		if isCanceled(err) {
			return cred, err
		}
		return cred, apperrors.Internal(err)
	}
	return cred, nil
}

func (s *Service) verify(ctx context.Context, pw string, cred password.Credential) error {
	start := time.Now()
	err := s.passwords.Verify(ctx, pw, cred)
	s.metrics.RecordHash(ctx, "verify", time.Since(start))
	return err
}

func throttleKey(username, clientKey string) string {
	return strings.ToLower(username) + "|" + clientKey
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
