package prompt_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/prompt"
	"prompt-library/internal/repository/repotest"
	promptUC "prompt-library/internal/usecase/prompt"
)

/* ──────────────────────────────── fixture ──────────────────────────────── */

var (
	alice = auth.Principal{UserID: 1, Username: "alice", Role: auth.RoleMember}
	bob   = auth.Principal{UserID: 2, Username: "bob", Role: auth.RoleMember}
	staff = auth.Principal{UserID: 3, Username: "root", Role: auth.RoleAdmin}
)

type fixture struct {
	mux   *http.ServeMux
	store *repotest.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := repotest.NewStore()
	require.NoError(t, st.Categories().Create(context.Background(),
		&entity.Category{Kind: entity.CategoryKindPrompt, Name: "Writing", Slug: "writing"}))

	mux := http.NewServeMux()
	prompt.Register(mux, &promptUC.Service{
		Prompts:    st.Prompts(),
		Bookmarks:  st.Bookmarks(),
		Categories: st.Categories(),
	}, pagination.DefaultConfig())
	return &fixture{mux: mux, store: st}
}

// do serves the request as p; a zero principal is anonymous.
func (f *fixture) do(p auth.Principal, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if p.UserID != 0 {
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) create(t *testing.T, p auth.Principal, body string) prompt.DTO {
	t.Helper()
	rec := f.do(p, "POST", "/prompts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var dto prompt.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	return dto
}

const basic = `{"title":"Summarise a Paper","description":"d","prompt_text":"You are a reviewer","category":"writing","tags":["research"," summaries "]}`

/* ──────────────────────────────── create ──────────────────────────────── */

func TestCreateHandler_AssignsSlug(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, alice, basic)
	assert.Equal(t, "summarise-a-paper", first.Slug)
	assert.Equal(t, int64(1), first.AuthorID)
	assert.True(t, first.IsPublished)
	assert.Equal(t, []string{"research", "summaries"}, first.Tags)
	require.NotNil(t, first.CategoryID)

	second := f.create(t, bob, basic)
	assert.Equal(t, "summarise-a-paper-1", second.Slug)

	third := f.create(t, bob, basic)
	assert.Equal(t, "summarise-a-paper-2", third.Slug)
}

func TestCreateHandler_StaffOptions(t *testing.T) {
	f := newFixture(t)
	body := `{"title":"T","description":"d","prompt_text":"p","slug":"Custom_Slug","is_featured":true,"is_published":false}`

	member := f.create(t, alice, body)
	assert.Equal(t, "t", member.Slug, "members cannot pick a slug")
	assert.False(t, member.IsFeatured)
	assert.True(t, member.IsPublished)

	admin := f.create(t, staff, body)
	assert.Equal(t, "Custom_Slug", admin.Slug, "explicit slugs are kept verbatim")
	assert.True(t, admin.IsFeatured)
	assert.False(t, admin.IsPublished)

	rec := f.do(staff, "POST", "/prompts", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateHandler_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		body  string
		code  int
		field string
	}{
		{"missing title", `{"description":"d","prompt_text":"p"}`, http.StatusBadRequest, "title"},
		{"bad difficulty", `{"title":"t","description":"d","prompt_text":"p","difficulty":"expert"}`, http.StatusBadRequest, "difficulty"},
		{"bad json", `{"title":`, http.StatusBadRequest, "body"},
		{"unknown category", `{"title":"t","description":"d","prompt_text":"p","category":"nope"}`, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(alice, "POST", "/prompts", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			var body struct {
				Field string `json:"field"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.field, body.Field)
		})
	}
}

/* ──────────────────────────────── read ──────────────────────────────── */

func TestListHandler(t *testing.T) {
	f := newFixture(t)
	f.create(t, alice, basic)
	f.create(t, alice, `{"title":"Refactor Go","description":"d","prompt_text":"p","ai_model":"claude"}`)
	f.create(t, staff, `{"title":"Hidden","description":"d","prompt_text":"p","is_published":false}`)

	rec := f.do(auth.Principal{}, "GET", "/prompts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp pagination.Response[prompt.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, pagination.PromptsPageSize, resp.Pagination.Limit)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "refactor-go", resp.Data[0].Slug, "newest first")

	rec = f.do(auth.Principal{}, "GET", "/prompts?category=writing", "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "summarise-a-paper", resp.Data[0].Slug)

	rec = f.do(auth.Principal{}, "GET", "/prompts?model=claude&search=refactor", "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)

	assert.Equal(t, http.StatusBadRequest, f.do(auth.Principal{}, "GET", "/prompts?page=0", "").Code)

	rec = f.do(auth.Principal{}, "GET", "/prompts?category=missing", "")
	require.Equal(t, http.StatusOK, rec.Code, "an unknown category filters everything out")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Pagination.Total)
}

func TestListHandler_SearchParam(t *testing.T) {
	f := newFixture(t)
	f.create(t, alice, basic)
	f.create(t, alice, `{"title":"Unrelated","description":"d","prompt_text":"p"}`)

	rec := f.do(auth.Principal{}, "GET", "/prompts?search=Summarise", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp pagination.Response[prompt.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "summarise-a-paper", resp.Data[0].Slug)

	rec = f.do(auth.Principal{}, "GET", "/prompts?q=Summarise", "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2, "q is not a filter")
}

func TestGetHandler(t *testing.T) {
	f := newFixture(t)
	f.create(t, alice, basic)
	f.create(t, bob, basic)

	rec := f.do(auth.Principal{}, "GET", "/prompts/summarise-a-paper", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d prompt.DetailDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&d))
	assert.Equal(t, int64(1), d.Prompt.Views)
	require.NotNil(t, d.Category)
	assert.Equal(t, "writing", d.Category.Slug)
	require.Len(t, d.Related, 1)
	assert.Equal(t, "summarise-a-paper-1", d.Related[0].Slug)
	assert.False(t, d.IsBookmarked)

	assert.Equal(t, http.StatusNotFound, f.do(auth.Principal{}, "GET", "/prompts/missing", "").Code)
}

/* ──────────────────────────────── edit ──────────────────────────────── */

func TestUpdateHandler_KeepsSlugAndChecksAuthor(t *testing.T) {
	f := newFixture(t)
	f.create(t, alice, basic)

	rec := f.do(alice, "PUT", "/prompts/summarise-a-paper", `{"title":"Completely Different"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var dto prompt.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "Completely Different", dto.Title)
	assert.Equal(t, "summarise-a-paper", dto.Slug)

	assert.Equal(t, http.StatusForbidden, f.do(bob, "PUT", "/prompts/summarise-a-paper", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusOK, f.do(staff, "PUT", "/prompts/summarise-a-paper", `{"is_featured":true}`).Code)
}

func TestDeleteHandler(t *testing.T) {
	f := newFixture(t)
	f.create(t, alice, basic)

	assert.Equal(t, http.StatusForbidden, f.do(bob, "DELETE", "/prompts/summarise-a-paper", "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(alice, "DELETE", "/prompts/summarise-a-paper", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(alice, "DELETE", "/prompts/summarise-a-paper", "").Code)
}

/* ──────────────────────────────── bookmarks ──────────────────────────────── */

func TestBookmarkHandlers(t *testing.T) {
	f := newFixture(t)
	f.create(t, alice, basic)

	toggle := func() bool {
		rec := f.do(bob, "POST", "/prompts/summarise-a-paper/bookmark", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Bookmarked bool `json:"bookmarked"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp.Bookmarked
	}

	assert.True(t, toggle())

	rec := f.do(bob, "GET", "/me/bookmarks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp pagination.Response[prompt.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)

	rec = f.do(bob, "GET", "/prompts/summarise-a-paper", "")
	var d prompt.DetailDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&d))
	assert.True(t, d.IsBookmarked)

	assert.False(t, toggle())
	assert.Equal(t, http.StatusNotFound, f.do(bob, "POST", "/prompts/missing/bookmark", "").Code)
}

func TestMineHandler_IncludesDrafts(t *testing.T) {
	f := newFixture(t)
	f.create(t, staff, `{"title":"Draft","description":"d","prompt_text":"p","is_published":false}`)
	f.create(t, alice, basic)

	rec := f.do(staff, "GET", "/me/prompts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp pagination.Response[prompt.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "draft", resp.Data[0].Slug)
	assert.False(t, resp.Data[0].IsPublished)
}
