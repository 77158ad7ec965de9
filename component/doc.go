// Package component defines the lifecycle contract for the service's
// infrastructure (database, redis, HTTP server, telemetry) and a registry
// that starts components in registration order and stops them in reverse.
package component
