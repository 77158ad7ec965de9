package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/ledger/component"
	"github.com/kbukum/ledger/logger"
)

// Component installs the tracer and meter providers on Start and flushes
// them on Stop. It is a no-op when Config.Enabled is false.
type Component struct {
	cfg    Config
	svc    ServiceInfo
	log    *logger.Logger
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

var _ component.Component = (*Component)(nil)

// NewComponent creates the observability component.
func NewComponent(cfg Config, svc ServiceInfo, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, svc: svc, log: log.WithComponent("observability")}
}

func (c *Component) Name() string { return "observability" }

func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}

	tp, err := InitTracer(ctx, c.cfg, c.svc)
	if err != nil {
		return fmt.Errorf("observability tracer: %w", err)
	}
	mp, err := InitMeter(ctx, c.cfg, c.svc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("observability meter: %w", err)
	}
	c.tracer, c.meter = tp, mp

	c.log.Info("Telemetry export enabled", logger.Fields(
		"endpoint", c.cfg.Endpoint,
		"sample_rate", c.cfg.SampleRate,
	))
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tracer != nil {
		errs = append(errs, c.tracer.Shutdown(ctx))
	}
	if c.meter != nil {
		errs = append(errs, c.meter.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp-http %s sample=%.2f", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "observability", Details: details}
}
