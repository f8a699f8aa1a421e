// Package config gathers the settings of the API server: environment
// variables for the process and a YAML file for the site itself.
package config

import (
	"fmt"
	"time"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/resilience/circuitbreaker"
	authservice "prompt-library/internal/service/auth"
	envconfig "prompt-library/pkg/config"
)

// Config holds the API server configuration.
type Config struct {
	// Addr is the listen address. Default: ":8080"
	Addr string

	// Version is reported by /health. Default: "dev"
	Version string

	// DatabaseURL is the Postgres DSN. Required.
	DatabaseURL string

	// JWTSecret signs access tokens. Required, at least 32 characters.
	JWTSecret string

	// TokenTTL is the lifetime of an access token. Default: 24h
	TokenTTL time.Duration

	// SitePath is the site YAML file. Default: config/site.yaml
	SitePath string

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration

	// RequestTimeout bounds a single request. Default: 30s, 0 disables
	RequestTimeout time.Duration

	// BodyLimit caps request bodies in bytes. Default: 1 MiB
	BodyLimit int64

	// TracingEnabled installs the OpenTelemetry SDK provider. Default: false
	TracingEnabled bool

	// AuthRate limits /auth/token and /auth/register per client IP.
	AuthRate RateConfig

	Pagination pagination.Config

	// Breaker guards content repository calls.
	Breaker circuitbreaker.Config
}

// RateConfig is a token bucket: PerMinute refill with Burst capacity.
type RateConfig struct {
	PerMinute int
	Burst     int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	breaker := circuitbreaker.DBConfig()
	breaker.Timeout = envconfig.GetEnvDuration("DB_CB_TIMEOUT", breaker.Timeout)
	breaker.MinRequests = uint32(max(1, envconfig.GetEnvInt("DB_CB_MIN_REQUESTS", int(breaker.MinRequests))))

	cfg := &Config{
		Addr:            envconfig.GetEnvString("HTTP_ADDR", ":8080"),
		Version:         envconfig.GetEnvString("VERSION", "dev"),
		DatabaseURL:     envconfig.GetEnvString("DATABASE_URL", ""),
		JWTSecret:       envconfig.GetEnvString("JWT_SECRET", ""),
		TokenTTL:        envconfig.GetEnvDuration("JWT_TTL", 24*time.Hour),
		SitePath:        envconfig.GetEnvString("SITE_CONFIG_PATH", DefaultSitePath),
		ShutdownTimeout: envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:  envconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		BodyLimit:       int64(envconfig.GetEnvInt("HTTP_BODY_LIMIT", 1<<20)),
		TracingEnabled:  envconfig.GetEnvBool("TRACING_ENABLED", false),
		AuthRate: RateConfig{
			PerMinute: envconfig.GetEnvInt("AUTH_RATE_PER_MINUTE", 5),
			Burst:     envconfig.GetEnvInt("AUTH_RATE_BURST", 5),
		},
		Pagination: pagination.LoadFromEnv(),
		Breaker:    breaker,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("HTTP_ADDR cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}

	if err := authservice.ValidateSecret(c.JWTSecret); err != nil {
		return err
	}

	if err := envconfig.ValidatePositiveDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("JWT_TTL: %w", err)
	}

	if err := envconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	if err := envconfig.ValidateNonNegativeDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT: %w", err)
	}

	if c.BodyLimit <= 0 {
		return fmt.Errorf("HTTP_BODY_LIMIT must be positive")
	}

	if c.AuthRate.PerMinute <= 0 || c.AuthRate.Burst <= 0 {
		return fmt.Errorf("AUTH_RATE_PER_MINUTE and AUTH_RATE_BURST must be positive")
	}

	if err := envconfig.ValidatePositiveDuration(c.Breaker.Timeout); err != nil {
		return fmt.Errorf("DB_CB_TIMEOUT: %w", err)
	}

	return nil
}
