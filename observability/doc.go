// Package observability sets up OpenTelemetry tracing and metrics for the
// ledger service and defines its auth instruments.
//
// When disabled, nothing is exported and the global no-op providers stay in
// place, so spans and AuthMetrics calls cost almost nothing.
//
//	observability:
//	  enabled: true
//	  endpoint: localhost:4318
//	  insecure: true
//	  sample_rate: 0.25
package observability
