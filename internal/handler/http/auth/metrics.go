package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// loginsTotal counts POST /auth/token outcomes. role is "unknown" on failure.
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Token requests by role and result (success, failure)",
		},
		[]string{"role", "result"},
	)

	// loginDuration is dominated by bcrypt.
	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_login_duration_seconds",
			Help:    "Token request duration",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	rejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rejected_total",
			Help: "Requests refused by the authorization middleware by status (401, 403) and role",
		},
		[]string{"status", "role"},
	)
)

func recordLogin(role, result string, start time.Time) {
	loginsTotal.WithLabelValues(role, result).Inc()
	loginDuration.Observe(time.Since(start).Seconds())
}

func recordUnauthorized() {
	rejectedTotal.WithLabelValues("401", "anonymous").Inc()
}

func recordForbidden(role string) {
	rejectedTotal.WithLabelValues("403", role).Inc()
}
