package metrics

import (
	"time"
)

// RecordContentCreated counts a created prompt, post, news article or category.
func RecordContentCreated(kind string) {
	ContentCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordSlugProbe records the number of existence checks one slug
// assignment needed. A free base slug is one attempt.
func RecordSlugProbe(collection string, attempts int) {
	SlugProbeAttempts.WithLabelValues(collection).Observe(float64(attempts))
}

// RecordSlugConflict counts a write that lost a slug race to the unique index.
func RecordSlugConflict(collection string) {
	SlugConflictsTotal.WithLabelValues(collection).Inc()
}

// RecordBookmarkToggle records the state a toggle produced.
func RecordBookmarkToggle(bookmarked bool) {
	action := "added"
	if !bookmarked {
		action = "removed"
	}
	BookmarksToggledTotal.WithLabelValues(action).Inc()
}

// RecordRegistration records a registration outcome.
// Result should be one of "success", "invalid", "duplicate" or "error".
func RecordRegistration(result string) {
	RegistrationsTotal.WithLabelValues(result).Inc()
}

// RecordCommentCreated counts a new blog comment.
func RecordCommentCreated() {
	CommentsTotal.Inc()
}

// UpdateContentTotal sets the published item gauge for kind.
// This gauge should be updated periodically to reflect the current state.
func UpdateContentTotal(kind string, count int64) {
	ContentItemsTotal.WithLabelValues(kind).Set(float64(count))
}

// RecordWorkerJob records one run of a scheduled job.
func RecordWorkerJob(job string, duration time.Duration, err error) {
	WorkerJobDuration.WithLabelValues(job).Observe(duration.Seconds())
	if err != nil {
		WorkerJobErrors.WithLabelValues(job).Inc()
	}
}

// RecordProfilesRefreshed adds n refreshed profiles.
func RecordProfilesRefreshed(n int) {
	ProfilesRefreshedTotal.Add(float64(n))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "count_prompts").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordCircuitState marks state as the current state of circuit.
func RecordCircuitState(circuit, state string) {
	for _, s := range []string{"closed", "half-open", "open"} {
		v := 0.0
		if s == state {
			v = 1
		}
		CircuitBreakerState.WithLabelValues(circuit, s).Set(v)
	}
}

// RecordRateLimited counts a request to path rejected with 429.
func RecordRateLimited(path string) {
	RateLimitedTotal.WithLabelValues(path).Inc()
}
