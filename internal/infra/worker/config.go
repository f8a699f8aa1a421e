package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

// Config holds the worker settings.
type Config struct {
	// StatsSchedule refreshes the denormalised profile counters.
	// Default: "*/30 * * * *"
	StatsSchedule string

	// GaugesSchedule refreshes the content_items_total gauges.
	// Default: "*/5 * * * *"
	GaugesSchedule string

	// Timezone is the IANA location the schedules are read in. Default: "UTC"
	Timezone string

	// Concurrency bounds profile refreshes in flight. Range 1-50, default 4.
	Concurrency int

	// JobTimeout bounds a single job run. Range 10s-1h, default 5m.
	JobTimeout time.Duration

	// HealthPort serves /health, /health/ready and /metrics. Range 1024-65535, default 9091.
	HealthPort int
}

// DefaultConfig returns the settings used for unset or invalid variables.
func DefaultConfig() Config {
	return Config{
		StatsSchedule:  "*/30 * * * *",
		GaugesSchedule: "*/5 * * * *",
		Timezone:       "UTC",
		Concurrency:    4,
		JobTimeout:     5 * time.Minute,
		HealthPort:     9091,
	}
}

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func validateSchedule(s string) error {
	if _, err := scheduleParser.Parse(s); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s, err)
	}
	return nil
}

func validateTimezone(tz string) error {
	if tz == "" {
		return errors.New("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return nil
}

func intRange(lo, hi int) func(int) error {
	return func(v int) error {
		if v < lo || v > hi {
			return fmt.Errorf("value %d out of range [%d, %d]", v, lo, hi)
		}
		return nil
	}
}

func durationRange(lo, hi time.Duration) func(time.Duration) error {
	return func(d time.Duration) error {
		if d < lo || d > hi {
			return fmt.Errorf("duration %s out of range [%s, %s]", d, lo, hi)
		}
		return nil
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	return errors.Join(
		wrapField("stats schedule", validateSchedule(c.StatsSchedule)),
		wrapField("gauges schedule", validateSchedule(c.GaugesSchedule)),
		wrapField("timezone", validateTimezone(c.Timezone)),
		wrapField("concurrency", intRange(1, 50)(c.Concurrency)),
		wrapField("job timeout", durationRange(10*time.Second, time.Hour)(c.JobTimeout)),
		wrapField("health port", intRange(1024, 65535)(c.HealthPort)),
	)
}

func wrapField(field string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", field, err)
}

// Location returns the schedule location, UTC if Timezone cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// loader reads variables fail-open: an unparsable or invalid value keeps
// the default, logs a warning and counts a fallback.
type loader struct {
	logger   *slog.Logger
	metrics  *Metrics
	fallback bool
}

func load[T any](l *loader, key string, def T, parse func(string) (T, error), validate func(T) error) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		l.fallback = true
		l.metrics.RecordFallback(key)
		l.logger.Warn("configuration fallback applied",
			slog.String("env_key", key),
			slog.String("invalid_value", raw),
			slog.Any("default_value", def),
			slog.Any("error", err))
		return def
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

// LoadConfigFromEnv reads WORKER_STATS_SCHEDULE, WORKER_GAUGES_SCHEDULE,
// WORKER_TIMEZONE, WORKER_CONCURRENCY, WORKER_JOB_TIMEOUT and
// WORKER_HEALTH_PORT. It never fails: invalid values fall back to
// DefaultConfig.
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) *Config {
	def := DefaultConfig()
	l := &loader{logger: logger, metrics: metrics}

	cfg := &Config{
		StatsSchedule:  load(l, "WORKER_STATS_SCHEDULE", def.StatsSchedule, parseString, validateSchedule),
		GaugesSchedule: load(l, "WORKER_GAUGES_SCHEDULE", def.GaugesSchedule, parseString, validateSchedule),
		Timezone:       load(l, "WORKER_TIMEZONE", def.Timezone, parseString, validateTimezone),
		Concurrency:    load(l, "WORKER_CONCURRENCY", def.Concurrency, strconv.Atoi, intRange(1, 50)),
		JobTimeout:     load(l, "WORKER_JOB_TIMEOUT", def.JobTimeout, time.ParseDuration, durationRange(10*time.Second, time.Hour)),
		HealthPort:     load(l, "WORKER_HEALTH_PORT", def.HealthPort, strconv.Atoi, intRange(1024, 65535)),
	}

	metrics.SetFallbackActive(l.fallback)
	metrics.RecordLoadTimestamp()
	return cfg
}
