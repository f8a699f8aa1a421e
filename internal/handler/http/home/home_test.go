package home_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/home"
	"prompt-library/internal/repository/repotest"
	blogUC "prompt-library/internal/usecase/blog"
	newsUC "prompt-library/internal/usecase/news"
	promptUC "prompt-library/internal/usecase/prompt"
)

func TestHandler(t *testing.T) {
	ctx := context.Background()
	st := repotest.NewStore()
	editor := &entity.User{Username: "editor", Email: "editor@example.com", IsStaff: true}
	require.NoError(t, st.Users().CreateWithProfile(ctx, editor, entity.NewProfile(0)))

	prompts := &promptUC.Service{Prompts: st.Prompts(), Bookmarks: st.Bookmarks(), Categories: st.Categories()}
	posts := &blogUC.Service{Posts: st.Posts(), Comments: st.Comments(), Categories: st.Categories()}
	articles := &newsUC.Service{Articles: st.News(), Categories: st.Categories()}

	featured := true
	_, err := prompts.Create(ctx, editor, promptUC.CreateInput{
		Title: "Featured Prompt", Description: "d", PromptText: "p", IsFeatured: &featured,
	})
	require.NoError(t, err)
	_, err = prompts.Create(ctx, editor, promptUC.CreateInput{Title: "Plain Prompt", Description: "d", PromptText: "p"})
	require.NoError(t, err)
	_, err = articles.Create(ctx, editor, newsUC.CreateInput{
		Title: "Outage", Summary: "s", Content: "c", Priority: entity.PriorityBreaking,
	})
	require.NoError(t, err)
	_, err = articles.Create(ctx, editor, newsUC.CreateInput{Title: "Weekly Digest", Summary: "s", Content: "c", IsFeatured: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux := http.NewServeMux()
	home.Register(mux, home.Handler{Prompts: prompts, Posts: posts, News: articles})
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/home", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got home.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.FeaturedPrompts, 1)
	assert.Equal(t, "featured-prompt", got.FeaturedPrompts[0].Slug)
	assert.NotNil(t, got.FeaturedPosts)
	assert.Empty(t, got.FeaturedPosts)
	require.Len(t, got.BreakingNews, 1)
	assert.Equal(t, "outage", got.BreakingNews[0].Slug)
	require.Len(t, got.FeaturedNews, 1)
	assert.Equal(t, "weekly-digest", got.FeaturedNews[0].Slug)
	assert.Len(t, got.LatestNews, 2)
}
