package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the worker's own series. Job durations and errors are recorded
// by the use cases through internal/observability/metrics.
type Metrics struct {
	ConfigLoadTimestamp  prometheus.Gauge
	ConfigFallbacksTotal *prometheus.CounterVec
	ConfigFallbackActive prometheus.Gauge

	JobRunsTotal       *prometheus.CounterVec
	JobLastSuccessTime *prometheus.GaugeVec
}

// NewMetrics registers the worker metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ConfigLoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_load_timestamp",
			Help: "Unix timestamp of the last worker configuration load",
		}),
		ConfigFallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Invalid worker settings replaced by their default, by variable",
		}, []string{"field"}),
		ConfigFallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_fallback_active",
			Help: "1 if any worker setting fell back to its default",
		}),
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Scheduled job runs by job and status (success, failure)",
		}, []string{"job", "status"}),
		JobLastSuccessTime: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run by job",
		}, []string{"job"}),
	}
}

func (m *Metrics) RecordLoadTimestamp() { m.ConfigLoadTimestamp.SetToCurrentTime() }

func (m *Metrics) RecordFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}

func (m *Metrics) SetFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
		return
	}
	m.ConfigFallbackActive.Set(0)
}

// RecordJobRun counts a finished run and stamps the success time.
func (m *Metrics) RecordJobRun(job string, err error) {
	if err != nil {
		m.JobRunsTotal.WithLabelValues(job, "failure").Inc()
		return
	}
	m.JobRunsTotal.WithLabelValues(job, "success").Inc()
	m.JobLastSuccessTime.WithLabelValues(job).SetToCurrentTime()
}
