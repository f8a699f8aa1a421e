// Package logging provides structured logging utilities with context propagation.
//
// The HTTP middleware stores a request scoped logger (request id, trace id)
// in the context; deeper layers retrieve it with FromContext:
//
//	logging.FromContext(ctx).Info("prompt created", slog.String("slug", p.Slug))
package logging
