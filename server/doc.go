// Package server provides the HTTP server: a Gin engine mounted on a
// ServeMux, wrapped in handler-level middleware and served with h2c.
//
// # Middleware
//
// Applied by ApplyMiddleware (server/middleware), outermost first:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: request body cap
//   - RequestLogger: one log line per request
//
// # Endpoints
//
// RegisterDefaultEndpoints adds /health (component health) and /ready.
//
// Handlers answer through the helpers in response.go so every success is
// {"data": ...} and every failure is the errors package's {"error": {...}}.
package server
