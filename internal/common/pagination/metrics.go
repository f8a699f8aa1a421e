package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated requests.
	// Labels: collection, status (HTTP status code), page_range (1-10, 11-50, ...)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"collection", "status", "page_range"},
	)

	// ErrorsTotal counts pagination errors by type (validation, database).
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"collection", "type"},
	)
)

// RecordRequest records a paginated request.
func RecordRequest(collection string, statusCode, page int) {
	RequestsTotal.WithLabelValues(collection, strconv.Itoa(statusCode), pageRangeBucket(page)).Inc()
}

// RecordError records an error metric.
// errorType should be one of: "validation", "database"
func RecordError(collection, errorType string) {
	ErrorsTotal.WithLabelValues(collection, errorType).Inc()
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
