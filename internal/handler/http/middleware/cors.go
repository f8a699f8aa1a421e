// Package middleware holds cross-cutting HTTP middleware: CORS, client
// address resolution and per-client rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	envconfig "prompt-library/pkg/config"
)

// CORSConfig is the cross-origin policy. An empty AllowedOrigins disables CORS headers.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is the preflight cache duration in seconds.
	MaxAge int
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE.
func LoadCORSConfig() (CORSConfig, error) {
	cfg := CORSConfig{
		AllowedMethods: envconfig.GetEnvStringList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: envconfig.GetEnvStringList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		MaxAge:         envconfig.GetEnvInt("CORS_MAX_AGE", 86400),
	}

	for _, o := range envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil) {
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return CORSConfig{}, fmt.Errorf("invalid origin %q in CORS_ALLOWED_ORIGINS", o)
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, normalizeOrigin(o))
	}
	for i, m := range cfg.AllowedMethods {
		cfg.AllowedMethods[i] = strings.ToUpper(m)
	}
	if cfg.MaxAge < 0 {
		return CORSConfig{}, fmt.Errorf("CORS_MAX_AGE must be non-negative, got: %d", cfg.MaxAge)
	}
	return cfg, nil
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

// IsAllowed reports whether origin is whitelisted, ignoring case and a trailing slash.
func (c CORSConfig) IsAllowed(origin string) bool {
	return origin != "" && slices.Contains(c.AllowedOrigins, normalizeOrigin(origin))
}

// CORS echoes allowed origins and answers preflight requests with 204.
// Disallowed origins are served without CORS headers so the browser blocks them.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !cfg.IsAllowed(origin) {
				slog.Debug("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
