package site_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/config"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/site"
	"prompt-library/internal/repository/repotest"
	userUC "prompt-library/internal/usecase/user"
)

func TestHandler(t *testing.T) {
	ctx := context.Background()
	st := repotest.NewStore()
	u := &entity.User{Username: "alice", Email: "alice@example.com"}
	prof := entity.NewProfile(0)
	prof.Theme, prof.Language = entity.ThemeDark, entity.LanguageArabic
	require.NoError(t, st.Users().CreateWithProfile(ctx, u, prof))

	mux := http.NewServeMux()
	site.Register(mux, site.Handler{
		Site:  config.DefaultSiteConfig(),
		Users: &userUC.Service{Users: st.Users(), Profiles: st.Profiles()},
	})

	get := func(r *http.Request) site.DTO {
		t.Helper()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
		var dto site.DTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		return dto
	}

	anon := get(httptest.NewRequest("GET", "/site", nil))
	assert.Equal(t, "Prompt Library", anon.Name)
	assert.Len(t, anon.Languages, 2)
	assert.Equal(t, entity.ThemeLight, anon.Theme)
	assert.Equal(t, entity.LanguageEnglish, anon.Language)

	req := httptest.NewRequest("GET", "/site", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: u.ID, Username: "alice", Role: auth.RoleMember}))
	mine := get(req)
	assert.Equal(t, entity.ThemeDark, mine.Theme)
	assert.Equal(t, entity.LanguageArabic, mine.Language)

	req = httptest.NewRequest("GET", "/site", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: 999, Username: "ghost", Role: auth.RoleMember}))
	assert.Equal(t, entity.ThemeLight, get(req).Theme, "missing profile falls back to defaults")
}
