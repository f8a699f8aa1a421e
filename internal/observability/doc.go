// Package observability groups the logging, metrics and tracing helpers.
//
// Subpackages:
//   - logging: slog setup and request scoped loggers
//   - metrics: Prometheus business, worker and database metrics
//   - tracing: OpenTelemetry provider setup, HTTP middleware and span helpers
package observability
