package observability

import (
	"fmt"
	"time"
)

// Config configures OTLP/HTTP export of traces and metrics.
type Config struct {
	// Enabled turns exporting on.
	Enabled bool `mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (default: localhost:4318).
	Endpoint string `mapstructure:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `mapstructure:"insecure"`

	// SampleRate is the trace sampling ratio, 0.0 to 1.0 (default: 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`

	// MetricInterval is the metric export interval (default: 15s).
	MetricInterval time.Duration `mapstructure:"metric_interval"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be within [0, 1] (got: %v)", c.SampleRate)
	}
	if c.MetricInterval <= 0 {
		return fmt.Errorf("observability.metric_interval must be positive")
	}
	return nil
}

// ServiceInfo identifies the service on exported telemetry.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}
