package news_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository/repotest"
	newsUC "prompt-library/internal/usecase/news"
)

var (
	editor = &entity.User{ID: 1, Username: "editor", IsStaff: true}
	reader = &entity.User{ID: 2, Username: "reader"}
)

func newService() (*newsUC.Service, *repotest.Store) {
	st := repotest.NewStore()
	return &newsUC.Service{Articles: st.News(), Categories: st.Categories()}, st
}

func article(title string) newsUC.CreateInput {
	return newsUC.CreateInput{Title: title, Summary: "summary", Content: "content"}
}

func mustCreate(t *testing.T, svc *newsUC.Service, in newsUC.CreateInput) *entity.NewsArticle {
	t.Helper()
	a, err := svc.Create(context.Background(), editor, in)
	require.NoError(t, err)
	return a
}

func newsCategory(t *testing.T, st *repotest.Store, name, slug string) *entity.Category {
	t.Helper()
	c := &entity.Category{Kind: entity.CategoryKindNews, Name: name, Slug: slug, Color: entity.DefaultNewsColor}
	require.NoError(t, st.Categories().Create(context.Background(), c))
	return c
}

func boolPtr(b bool) *bool { return &b }

func page1() pagination.Params {
	return pagination.Params{Page: 1, Limit: pagination.NewsPageSize}
}

/* ──────────────────────────────── staff ──────────────────────────────── */

func TestService_Create(t *testing.T) {
	svc, _ := newService()

	a := mustCreate(t, svc, article("Élection 2024: résultats"))
	assert.Equal(t, "election-2024-resultats", a.Slug)
	assert.True(t, a.IsPublished)
	assert.Equal(t, entity.PriorityNormal, a.Priority)
	assert.False(t, a.PublishedAt.IsZero())

	b := mustCreate(t, svc, article("Election 2024 Resultats"))
	assert.Equal(t, "election-2024-resultats-1", b.Slug)
}

func TestService_Create_StaffOnly(t *testing.T) {
	svc, st := newService()

	_, err := svc.Create(context.Background(), reader, article("x"))
	assert.ErrorIs(t, err, entity.ErrForbidden)
	_, err = svc.Create(context.Background(), nil, article("x"))
	assert.ErrorIs(t, err, newsUC.ErrStaffOnly)
	assert.Zero(t, st.ExistsCalls)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newService()

	in := article("Bad priority")
	in.Priority = "urgent"
	_, err := svc.Create(context.Background(), editor, in)
	var ve *entity.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "priority", ve.Field)

	in = article("Explicit")
	in.Slug = "no/slashes"
	_, err = svc.Create(context.Background(), editor, in)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "slug", ve.Field)
}

func TestService_UpdateDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	a := mustCreate(t, svc, article("Original"))

	title := "Rewritten headline"
	updated, err := svc.Update(ctx, editor, a.Slug, newsUC.UpdateInput{Title: &title, IsFeatured: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Slug)
	assert.True(t, updated.IsFeatured)

	_, err = svc.Update(ctx, reader, a.Slug, newsUC.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, editor, a.Slug))
	assert.ErrorIs(t, svc.Delete(ctx, editor, a.Slug), newsUC.ErrArticleNotFound)
}

func TestService_ListAll_IncludesUnpublished(t *testing.T) {
	svc, _ := newService()
	mustCreate(t, svc, article("live"))
	hidden := article("hidden")
	hidden.IsPublished = boolPtr(false)
	mustCreate(t, svc, hidden)

	all, err := svc.ListAll(context.Background(), editor, page1())
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.Total)

	pub, err := svc.List(context.Background(), newsUC.ListFilter{}, page1())
	require.NoError(t, err)
	assert.Equal(t, int64(1), pub.Pagination.Total)

	_, err = svc.ListAll(context.Background(), reader, page1())
	assert.ErrorIs(t, err, newsUC.ErrStaffOnly)
}

/* ──────────────────────────────── readers ──────────────────────────────── */

func TestService_List_Filters(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	newsCategory(t, st, "Tech", "tech")

	tech := article("Chip shortage")
	tech.Category = "tech"
	tech.Subtitle = "Semiconductors"
	mustCreate(t, svc, tech)

	breaking := article("Storm warning")
	breaking.Priority = entity.PriorityBreaking
	mustCreate(t, svc, breaking)

	got, err := svc.List(ctx, newsUC.ListFilter{Search: "semiconductor"}, page1())
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Chip shortage", got.Items[0].Title)

	got, err = svc.List(ctx, newsUC.ListFilter{Priority: entity.PriorityBreaking}, page1())
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Storm warning", got.Items[0].Title)

	got, err = svc.List(ctx, newsUC.ListFilter{Category: "tech"}, page1())
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	got, err = svc.List(ctx, newsUC.ListFilter{Category: "weather"}, page1())
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Pagination.Total)

	_, err = svc.List(ctx, newsUC.ListFilter{Priority: "urgent"}, page1())
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
}

func TestService_ListByCategory(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	c := newsCategory(t, st, "Sport", "sport")
	in := article("Final score")
	in.Category = "sport"
	mustCreate(t, svc, in)
	mustCreate(t, svc, article("Unrelated"))

	got, err := svc.ListByCategory(ctx, "sport", page1())
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.Category.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Final score", got.Items[0].Title)

	_, err = svc.ListByCategory(ctx, "weather", page1())
	assert.ErrorIs(t, err, newsUC.ErrCategoryNotFound)
}

func TestService_HomeListings(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		in := article("breaking")
		in.Priority = entity.PriorityBreaking
		in.IsFeatured = true
		mustCreate(t, svc, in)
	}
	for i := 0; i < 3; i++ {
		mustCreate(t, svc, article("normal"))
	}

	breaking, err := svc.Breaking(ctx)
	require.NoError(t, err)
	assert.Len(t, breaking, newsUC.BreakingLimit)
	for _, a := range breaking {
		assert.Equal(t, entity.PriorityBreaking, a.Priority)
	}

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, newsUC.FeaturedLimit)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, latest, newsUC.LatestLimit)
	assert.Equal(t, "normal", latest[0].Title, "newest first")
}

func TestService_GetBySlug(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	newsCategory(t, st, "World", "world")

	in := article("Main story")
	in.Category = "world"
	main := mustCreate(t, svc, in)
	rel := article("Follow-up")
	rel.Category = "world"
	mustCreate(t, svc, rel)

	d, err := svc.GetBySlug(ctx, main.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Article.Views)
	assert.Equal(t, "World", d.Category.Name)
	require.Len(t, d.Related, 1)
	assert.Equal(t, "Follow-up", d.Related[0].Title)
	assert.Len(t, d.Latest, 2)

	_, err = svc.Update(ctx, editor, main.Slug, newsUC.UpdateInput{IsPublished: boolPtr(false)})
	require.NoError(t, err)
	_, err = svc.GetBySlug(ctx, main.Slug)
	assert.ErrorIs(t, err, newsUC.ErrArticleNotFound)
}
