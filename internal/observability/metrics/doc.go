// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application level metrics:
//   - Business metrics (content created, slug probing, bookmarks, registrations)
//   - Worker job metrics
//   - Database metrics
//
// HTTP request metrics live with the HTTP middleware. All metrics are
// registered with the Prometheus default registry and exposed via /metrics.
//
// Example usage:
//
//	import "prompt-library/internal/observability/metrics"
//
//	func refresh(ctx context.Context) error {
//	    start := time.Now()
//	    err := doRefresh(ctx)
//	    metrics.RecordWorkerJob("refresh_profiles", time.Since(start), err)
//	    return err
//	}
package metrics
