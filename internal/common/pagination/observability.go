package pagination

import (
	"log/slog"
	"time"
)

// LogResponse logs a served page with its duration and status.
func LogResponse(logger *slog.Logger, requestID, collection string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("paginated response",
		slog.String("request_id", requestID),
		slog.String("collection", collection),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", returnedCount),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Int("status", statusCode))
}

// LogError logs a pagination failure with structured fields.
func LogError(logger *slog.Logger, requestID, collection string, params Params, err error, errorType string) {
	logger.Error("pagination error",
		slog.String("request_id", requestID),
		slog.String("collection", collection),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Any("error", err),
		slog.String("error_type", errorType))
}
