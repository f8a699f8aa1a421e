package http

import (
	"errors"
	"net/http"

	"prompt-library/internal/handler/http/respond"
)

const (
	maxAuthorizationHeader = 8 << 10
	maxPathLength          = 2 << 10
)

var (
	errAuthHeaderTooLarge = errors.New("authorization header too large")
	errURITooLong         = errors.New("URI too long")
)

// InputValidation rejects oversized Authorization headers (400) and paths (414)
// before routing. Body size is capped separately by LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationHeader {
				respond.Error(w, http.StatusBadRequest, errAuthHeaderTooLarge)
				return
			}
			if len(r.URL.Path) > maxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, errURITooLong)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
