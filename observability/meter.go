package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter creates an OTLP/HTTP meter provider and installs it globally.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config, svc ServiceInfo) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricInterval))),
		sdkmetric.WithResource(newResource(svc)),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Outcome labels for login and registration counters.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid_credentials"
	OutcomeDuplicate = "duplicate"
	OutcomeThrottled = "throttled"
	OutcomeError     = "error"
)

// AuthMetrics holds the authentication instruments. A nil *AuthMetrics
// records nothing.
type AuthMetrics struct {
	login        metric.Int64Counter
	register     metric.Int64Counter
	rejected     metric.Int64Counter
	hashDuration metric.Float64Histogram
}

// NewAuthMetrics creates the instruments on meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	login, err := meter.Int64Counter("auth.login",
		metric.WithDescription("Login attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login counter: %w", err)
	}

	register, err := meter.Int64Counter("auth.register",
		metric.WithDescription("Registrations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.register counter: %w", err)
	}

	rejected, err := meter.Int64Counter("auth.token.rejected",
		metric.WithDescription("Rejected session tokens by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.token.rejected counter: %w", err)
	}

	hashDuration, err := meter.Float64Histogram("auth.password.hash.duration",
		metric.WithDescription("Duration of password derivations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.password.hash.duration histogram: %w", err)
	}

	return &AuthMetrics{
		login:        login,
		register:     register,
		rejected:     rejected,
		hashDuration: hashDuration,
	}, nil
}

// NewGlobalAuthMetrics creates the instruments on the global meter provider.
func NewGlobalAuthMetrics() (*AuthMetrics, error) {
	return NewAuthMetrics(otel.Meter(InstrumentationName))
}

func (m *AuthMetrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.login.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AuthMetrics) RecordRegister(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.register.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AuthMetrics) RecordTokenRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordHash records one derivation; op is "hash" or "verify".
func (m *AuthMetrics) RecordHash(ctx context.Context, op string, d time.Duration) {
	if m == nil {
		return
	}
	m.hashDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("op", op)))
}
