package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func statusOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Status
}

func TestHealthServer_Liveness(t *testing.T) {
	logger, _ := bufferLogger()
	h := NewHealthServer(":0", logger).Handler()

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", statusOf(t, rec))
}

func TestHealthServer_Readiness(t *testing.T) {
	logger, _ := bufferLogger()
	srv := NewHealthServer(":0", logger)
	h := srv.Handler()

	rec := get(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", statusOf(t, rec))

	srv.SetReady(true)
	rec = get(t, h, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", statusOf(t, rec))

	srv.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/health/ready").Code)
}

func TestHealthServer_Metrics(t *testing.T) {
	logger, _ := bufferLogger()
	rec := get(t, NewHealthServer(":0", logger).Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestHealthServer_MethodNotAllowed(t *testing.T) {
	logger, _ := bufferLogger()
	rec := httptest.NewRecorder()
	NewHealthServer(":0", logger).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthServer_StartStopsOnCancel(t *testing.T) {
	logger, _ := bufferLogger()
	srv := NewHealthServer("127.0.0.1:0", logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, http.ErrServerClosed))
	case <-time.After(6 * time.Second):
		t.Fatal("health server did not stop")
	}
}
