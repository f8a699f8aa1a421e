package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{"map", http.StatusOK, map[string]string{"message": "success"}, `{"message":"success"}` + "\n"},
		{"struct", http.StatusCreated, struct{ ID int }{ID: 123}, `{"ID":123}` + "\n"},
		{"nil", http.StatusNoContent, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestStatusFor(t *testing.T) {
	notFound := entity.NotFound("prompt")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &entity.ValidationError{Field: "title", Message: "is required"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", &entity.ValidationError{Field: "x"}), http.StatusBadRequest},
		{"invalid input", entity.ErrInvalidInput, http.StatusBadRequest},
		{"bad page", fmt.Errorf("%w: page must be a positive integer", pagination.ErrInvalidParams), http.StatusBadRequest},
		{"forbidden", fmt.Errorf("staff only: %w", entity.ErrForbidden), http.StatusForbidden},
		{"named not found", fmt.Errorf("get: %w", notFound), http.StatusNotFound},
		{"duplicate slug", fmt.Errorf("create prompt: %w", entity.ErrDuplicateSlug), http.StatusConflict},
		{"duplicate user", entity.ErrDuplicateUser, http.StatusConflict},
		{"duplicate name", entity.ErrDuplicateName, http.StatusConflict},
		{"breaker open", fmt.Errorf("list prompts: %w", gobreaker.ErrOpenState), http.StatusServiceUnavailable},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestSafeError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/prompts", nil)

	t.Run("validation keeps field", func(t *testing.T) {
		w := httptest.NewRecorder()
		SafeError(w, r, fmt.Errorf("create: %w", &entity.ValidationError{Field: "title", Message: "is required"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorBody{Error: "is required", Field: "title"}, decode(t, w))
	})

	t.Run("conflict drops wrapping", func(t *testing.T) {
		w := httptest.NewRecorder()
		SafeError(w, r, fmt.Errorf("create prompt: %w", entity.ErrDuplicateSlug))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "slug already exists", decode(t, w).Error)
	})

	t.Run("not found names the entity", func(t *testing.T) {
		w := httptest.NewRecorder()
		SafeError(w, r, entity.NotFound("prompt"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "prompt not found", decode(t, w).Error)
	})

	t.Run("internal errors are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		SafeError(w, r, errors.New("dial tcp postgres://app:hunter2@db:5432: refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "hunter2")
		assert.Contains(t, body, "internal server error")
	})

	t.Run("nil writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		SafeError(w, r, nil)
		assert.Zero(t, w.Body.Len())
	})
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusUnauthorized, errors.New("invalid token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decode(t, w).Error)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	r := httptest.NewRequest(http.MethodPost, "/prompts", strings.NewReader(`{"title":"x"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "x", v.Title)

	r = httptest.NewRequest(http.MethodPost, "/prompts", strings.NewReader(`{"title":`))
	err := DecodeJSON(r, &v)
	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Field)
}
