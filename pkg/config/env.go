// Package config reads typed settings from environment variables. Unset
// variables yield the default; unparsable ones log a warning and yield the
// default too, so a typo never stops the process.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

func lookup[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.Any("error", err))
		return def
	}
	return v
}

func GetEnvString(key, def string) string {
	return lookup(key, def, func(s string) (string, error) { return s, nil })
}

func GetEnvInt(key string, def int) int {
	return lookup(key, def, func(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) })
}

// GetEnvBool accepts the spellings strconv.ParseBool does.
func GetEnvBool(key string, def bool) bool {
	return lookup(key, def, strconv.ParseBool)
}

// GetEnvDuration parses Go duration syntax ("30s", "1h30m"). Sign is kept;
// callers validate the range.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return lookup(key, def, time.ParseDuration)
}

// GetEnvStringList splits a comma separated value, trimming items and
// dropping empty ones. A value with no items yields def.
func GetEnvStringList(key string, def []string) []string {
	var items []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return def
	}
	return items
}

func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", d)
	}
	return nil
}
