package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/handler/http/category"
	"prompt-library/internal/repository/repotest"
	catUC "prompt-library/internal/usecase/category"
)

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	category.Register(mux, &catUC.Service{Repo: repotest.NewStore().Categories()})
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeDTO(t *testing.T, rec *httptest.ResponseRecorder) category.DTO {
	t.Helper()
	var dto category.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	return dto
}

func TestCreateHandler_AssignsUniqueSlugs(t *testing.T) {
	mux := newMux()

	rec := do(mux, "POST", "/admin/categories/blog", `{"name":"Machine Learning"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "machine-learning", decodeDTO(t, rec).Slug)

	rec = do(mux, "POST", "/admin/categories/blog", `{"name":"Machine learning!","slug":"Machine Learning"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "machine-learning-1", decodeDTO(t, rec).Slug)

	rec = do(mux, "POST", "/admin/categories/news", `{"name":"Machine Learning"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	dto := decodeDTO(t, rec)
	assert.Equal(t, "machine-learning", dto.Slug, "slugs are unique per kind")
	assert.Equal(t, "primary", dto.Color)
}

func TestCreateHandler_Errors(t *testing.T) {
	mux := newMux()
	require.Equal(t, http.StatusCreated, do(mux, "POST", "/admin/categories/prompt", `{"name":"Writing"}`).Code)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"duplicate name", "/admin/categories/prompt", `{"name":"Writing"}`, http.StatusConflict},
		{"missing name", "/admin/categories/prompt", `{"name":"  "}`, http.StatusBadRequest},
		{"bad kind", "/admin/categories/videos", `{"name":"Clips"}`, http.StatusBadRequest},
		{"bad json", "/admin/categories/prompt", `{"name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, do(mux, "POST", tt.path, tt.body).Code)
		})
	}
}

func TestListAndGetHandlers(t *testing.T) {
	mux := newMux()
	do(mux, "POST", "/admin/categories/news", `{"name":"World"}`)
	do(mux, "POST", "/admin/categories/news", `{"name":"Business"}`)
	do(mux, "POST", "/admin/categories/blog", `{"name":"Essays"}`)

	rec := do(mux, "GET", "/categories/news", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []category.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "Business", list[0].Name)
	assert.Equal(t, "World", list[1].Name)

	rec = do(mux, "GET", "/categories/news/world", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "World", decodeDTO(t, rec).Name)

	assert.Equal(t, http.StatusNotFound, do(mux, "GET", "/categories/blog/world", "").Code)
}

func TestUpdateHandler_KeepsSlug(t *testing.T) {
	mux := newMux()
	do(mux, "POST", "/admin/categories/blog", `{"name":"Essays"}`)

	rec := do(mux, "PUT", "/admin/categories/blog/essays", `{"name":"Long Essays","description":"d"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dto := decodeDTO(t, rec)
	assert.Equal(t, "Long Essays", dto.Name)
	assert.Equal(t, "essays", dto.Slug)

	assert.Equal(t, http.StatusNotFound, do(mux, "PUT", "/admin/categories/blog/missing", `{}`).Code)
}

func TestDeleteHandler(t *testing.T) {
	mux := newMux()
	do(mux, "POST", "/admin/categories/blog", `{"name":"Essays"}`)

	assert.Equal(t, http.StatusNoContent, do(mux, "DELETE", "/admin/categories/blog/essays", "").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, "DELETE", "/admin/categories/blog/essays", "").Code)
}
