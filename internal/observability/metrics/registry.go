// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// ContentItemsTotal tracks published items per kind (prompts, posts, news, users).
	ContentItemsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_items_total",
			Help: "Number of published items in the database by kind",
		},
		[]string{"kind"},
	)

	// ContentCreatedTotal counts successful creates per kind
	ContentCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_created_total",
			Help: "Total number of content items created",
		},
		[]string{"kind"},
	)

	// SlugProbeAttempts measures how many candidates were checked before a free slug was found
	SlugProbeAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slug_probe_attempts",
			Help:    "Number of existence checks needed to assign a slug",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 13, 21},
		},
		[]string{"collection"},
	)

	// SlugConflictsTotal counts inserts rejected by a unique slug index
	SlugConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slug_conflicts_total",
			Help: "Total number of writes rejected because the slug was already taken",
		},
		[]string{"collection"},
	)

	// BookmarksToggledTotal counts bookmark changes by action
	BookmarksToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarks_toggled_total",
			Help: "Total number of bookmark toggles",
		},
		[]string{"action"}, // action: added | removed
	)

	// RegistrationsTotal counts registration attempts by result
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "Total number of user registrations",
		},
		[]string{"result"}, // result: success | invalid | duplicate | error
	)

	// CommentsTotal counts comments created
	CommentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_comments_created_total",
			Help: "Total number of blog comments created",
		},
	)
)

// Worker metrics track scheduled jobs
var (
	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of scheduled worker jobs",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"job"},
	)

	WorkerJobErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_job_errors_total",
			Help: "Total number of failed worker job runs",
		},
		[]string{"job"},
	)

	ProfilesRefreshedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profiles_refreshed_total",
			Help: "Total number of profile statistics refreshed",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// CircuitBreakerState is 1 for the current state of each breaker, 0 for the others
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (1 = active)",
		},
		[]string{"circuit", "state"},
	)

	// RateLimitedTotal counts requests rejected by the per-IP limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"path"},
	)
)
