// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes a database circuit breaker and retry logic
// to ensure system resilience in the face of failures.
//
// The package supports:
//   - A circuit breaker in front of the content repositories' database calls
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	prompts := postgres.NewPromptRepo(guarded)
//
//	err := retry.WithBackoff(ctx, retry.DBConnectConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
