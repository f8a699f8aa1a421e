package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/handler/http/middleware"
)

func TestLoadCORSConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS", "CORS_MAX_AGE"} {
			t.Setenv(k, "")
		}
		cfg, err := middleware.LoadCORSConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.AllowedOrigins)
		assert.Contains(t, cfg.AllowedMethods, "PUT")
		assert.Contains(t, cfg.AllowedHeaders, "Authorization")
		assert.Equal(t, 86400, cfg.MaxAge)
	})

	t.Run("origins normalised", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://Example.com/, http://localhost:3000")
		t.Setenv("CORS_ALLOWED_METHODS", "get,post")
		cfg, err := middleware.LoadCORSConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
		assert.Equal(t, []string{"GET", "POST"}, cfg.AllowedMethods)
	})

	t.Run("invalid origin", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "ftp://example.com")
		_, err := middleware.LoadCORSConfig()
		assert.ErrorContains(t, err, "invalid origin")
	})

	t.Run("negative max age", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		t.Setenv("CORS_MAX_AGE", "-1")
		_, err := middleware.LoadCORSConfig()
		assert.ErrorContains(t, err, "CORS_MAX_AGE")
	})
}

func TestCORS(t *testing.T) {
	cfg := middleware.CORSConfig{
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization"},
		MaxAge:         600,
	}
	var called bool
	h := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		preflight  bool
		wantCode   int
		wantOrigin string
		wantNext   bool
	}{
		{"same origin", "GET", "", false, http.StatusOK, "", true},
		{"allowed actual request", "GET", "https://EXAMPLE.com", false, http.StatusOK, "https://EXAMPLE.com", true},
		{"disallowed origin", "GET", "https://evil.test", false, http.StatusOK, "", true},
		{"allowed preflight", "OPTIONS", "https://example.com", true, http.StatusNoContent, "https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(tt.method, "/prompts", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantNext, called)
			if tt.preflight {
				assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}
