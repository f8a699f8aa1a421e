package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/handler/http/requestid"
	"prompt-library/internal/observability/logging"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.New(&buf, "json", slog.LevelDebug), &buf
}

/* ──────────────────────────────── Logging ──────────────────────────────── */

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		status    int
		wantLevel string
	}{
		{"ok", http.MethodGet, "/prompts?page=2", http.StatusOK, "INFO"},
		{"created", http.MethodPost, "/prompts", http.StatusCreated, "INFO"},
		{"client error", http.MethodGet, "/prompts/missing", http.StatusNotFound, "INFO"},
		{"server error", http.MethodGet, "/home", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := bufferLogger()
			h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logging.FromContext(r.Context()).Info("inside handler")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}), requestid.Middleware, Logging(logger))

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set(requestid.RequestIDHeader, "req-123")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 2)

			var inner, done map[string]any
			require.NoError(t, json.Unmarshal([]byte(lines[0]), &inner))
			require.NoError(t, json.Unmarshal([]byte(lines[1]), &done))

			assert.Equal(t, "req-123", inner["request_id"], "handler logger carries the request id")
			assert.Equal(t, "request completed", done["msg"])
			assert.Equal(t, tt.wantLevel, done["level"])
			assert.Equal(t, float64(tt.status), done["status"])
			assert.Equal(t, float64(4), done["bytes"])
			assert.Equal(t, "req-123", done["request_id"])
		})
	}
}

/* ──────────────────────────────── Recover ──────────────────────────────── */

func TestRecover(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{"string panic", func(http.ResponseWriter, *http.Request) { panic("boom") }, http.StatusInternalServerError},
		{"error panic", func(http.ResponseWriter, *http.Request) { panic(fmt.Errorf("bad")) }, http.StatusInternalServerError},
		{"no panic", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) }, http.StatusAccepted},
		{"panic after header", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			panic("late")
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := bufferLogger()
			rec := httptest.NewRecorder()

			require.NotPanics(t, func() {
				Recover(logger)(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
			})
			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusInternalServerError {
				assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
				assert.Contains(t, buf.String(), "panic recovered")
			}
		})
	}
}

func TestRecover_AbortHandlerPropagates(t *testing.T) {
	logger, _ := bufferLogger()
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

/* ──────────────────────────────── LimitRequestBody ──────────────────────────────── */

func TestLimitRequestBody(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		size     int
		wantErr  bool
	}{
		{"within limit", 1024, 512, false},
		{"at limit", 1024, 1024, false},
		{"over limit", 100, 200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			h := LimitRequestBody(tt.maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))
			h.ServeHTTP(httptest.NewRecorder(),
				httptest.NewRequest(http.MethodPost, "/prompts", strings.NewReader(strings.Repeat("a", tt.size))))

			if tt.wantErr {
				var mbe *http.MaxBytesError
				assert.True(t, errors.As(readErr, &mbe))
				return
			}
			assert.NoError(t, readErr)
		})
	}
}

/* ──────────────────────────────── Chain ──────────────────────────────── */

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }),
		mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
