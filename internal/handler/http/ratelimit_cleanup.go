package http

import (
	"context"
	"log/slog"
	"time"

	"prompt-library/internal/handler/http/middleware"
	envconfig "prompt-library/pkg/config"
)

// DefaultCleanupInterval is how often idle rate-limit buckets are dropped.
const DefaultCleanupInterval = 5 * time.Minute

// CleanupConfig drives StartRateLimitCleanup.
type CleanupConfig struct {
	Interval time.Duration
	// MaxIdle is how long a client may stay silent before its bucket is forgotten.
	MaxIdle time.Duration
}

// LoadCleanupConfigFromEnv reads RATELIMIT_CLEANUP_INTERVAL and RATELIMIT_MAX_IDLE.
// Non-positive values fall back to the defaults.
func LoadCleanupConfigFromEnv() CleanupConfig {
	cfg := CleanupConfig{
		Interval: envconfig.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval),
		MaxIdle:  envconfig.GetEnvDuration("RATELIMIT_MAX_IDLE", 10*time.Minute),
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultCleanupInterval
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 10 * time.Minute
	}
	return cfg
}

// StartRateLimitCleanup prunes idle clients from limiter every cfg.Interval
// until ctx is cancelled. It blocks; run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter *middleware.RateLimiter, cfg CleanupConfig, name string) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter", name),
		slog.Duration("interval", cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped", slog.String("limiter", name))
			return
		case <-ticker.C:
			remaining := limiter.CleanupIdle(cfg.MaxIdle)
			slog.Debug("rate limit cleanup completed",
				slog.String("limiter", name),
				slog.Int("active_clients", remaining))
		}
	}
}
