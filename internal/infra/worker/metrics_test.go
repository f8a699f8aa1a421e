package worker

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordLoadTimestamp()
	m.RecordJobRun("refresh_gauges", nil)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "worker_config_load_timestamp")
	assert.Contains(t, names, "worker_job_runs_total")
	assert.Contains(t, names, "worker_job_last_success_timestamp")

	assert.NotPanics(t, func() { NewMetrics(prometheus.NewRegistry()) })
}

func TestMetrics_RecordJobRun(t *testing.T) {
	m := newTestMetrics()

	m.RecordJobRun("refresh_profile_stats", nil)
	m.RecordJobRun("refresh_profile_stats", nil)
	m.RecordJobRun("refresh_profile_stats", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("refresh_profile_stats", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("refresh_profile_stats", "failure")))
	assert.Positive(t, testutil.ToFloat64(m.JobLastSuccessTime.WithLabelValues("refresh_profile_stats")))
}

func TestMetrics_FailureDoesNotStampSuccess(t *testing.T) {
	m := newTestMetrics()
	m.RecordJobRun("refresh_gauges", errors.New("boom"))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.JobLastSuccessTime.WithLabelValues("refresh_gauges")))
}

func TestMetrics_SetFallbackActive(t *testing.T) {
	m := newTestMetrics()
	m.SetFallbackActive(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfigFallbackActive))
	m.SetFallbackActive(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ConfigFallbackActive))
}
