// Package tracing provides OpenTelemetry tracing integration.
//
// Init installs the SDK tracer provider at start-up; Middleware opens a
// server span per HTTP request and the use cases open child spans with
// StartSpan/EndSpan:
//
//	shutdown := tracing.Init(1.0)
//	defer shutdown(context.Background())
//
//	func (s *Service) Create(ctx context.Context, in CreateInput) (err error) {
//	    ctx, span := tracing.StartSpan(ctx, "prompt.Create")
//	    defer func() { tracing.EndSpan(span, err) }()
//	    ...
//	}
package tracing
