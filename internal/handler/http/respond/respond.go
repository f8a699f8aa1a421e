// Package respond writes JSON responses and maps domain errors onto HTTP
// status codes without leaking internal error text.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/logging"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Error writes err's message verbatim. Use for messages built by the handler.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// StatusFor maps a use case error onto its HTTP status.
func StatusFor(err error) int {
	var ve *entity.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve), errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, pagination.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateSlug),
		errors.Is(err, entity.ErrDuplicateName),
		errors.Is(err, entity.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// SafeError writes err with the status StatusFor picks. Validation errors
// carry their field; 4xx errors carry the sentinel's message; anything else
// is logged and answered with a generic message.
func SafeError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	code := StatusFor(err)

	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		JSON(w, code, ErrorBody{Error: ve.Message, Field: ve.Field})
	case code < http.StatusInternalServerError:
		JSON(w, code, ErrorBody{Error: publicMessage(err, code)})
	default:
		logging.FromContext(r.Context()).Error("internal server error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", SanitizeError(err)))
		JSON(w, code, ErrorBody{Error: "internal server error"})
	}
}

// DecodeJSON decodes the request body into v. A malformed body is reported
// as a validation error on the "body" field.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &entity.ValidationError{Field: "body", Message: "invalid JSON body"}
	}
	return nil
}

// publicMessage strips the wrapping context from err, which names internal
// operations, and keeps the innermost sentinel text.
func publicMessage(err error, code int) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return http.StatusText(code)
}
