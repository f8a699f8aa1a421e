package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository/repotest"
)

func newService() (*Service, *repotest.Store) {
	st := repotest.NewStore()
	return &Service{Repo: st.Categories()}, st
}

func strPtr(s string) *string { return &s }

/* ──────────────────────────────── Create ──────────────────────────────── */

func TestService_Create_AssignsSlugFromName(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, entity.CategoryKindPrompt, CreateInput{Name: "  Café Writing "})
	require.NoError(t, err)
	assert.Equal(t, "Café Writing", c.Name)
	assert.Equal(t, "cafe-writing", c.Slug)
	assert.NotZero(t, c.ID)
}

func TestService_Create_ExplicitSlugIsNormalisedAndProbed(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, entity.CategoryKindBlog, CreateInput{Name: "Go", Slug: "Go Lang"})
	require.NoError(t, err)

	c, err := svc.Create(ctx, entity.CategoryKindBlog, CreateInput{Name: "Golang", Slug: "go-lang"})
	require.NoError(t, err)
	assert.Equal(t, "go-lang-1", c.Slug)
}

func TestService_Create_SlugsAreScopedPerKind(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	blog, err := svc.Create(ctx, entity.CategoryKindBlog, CreateInput{Name: "Tech"})
	require.NoError(t, err)
	news, err := svc.Create(ctx, entity.CategoryKindNews, CreateInput{Name: "Tech"})
	require.NoError(t, err)

	assert.Equal(t, "tech", blog.Slug)
	assert.Equal(t, "tech", news.Slug)
	assert.Equal(t, entity.DefaultNewsColor, news.Color)
}

func TestService_Create_DuplicateName(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, entity.CategoryKindNews, CreateInput{Name: "World"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, entity.CategoryKindNews, CreateInput{Name: "World"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestService_Create_CollidingLongNameFitsColumn(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, entity.CategoryKindBlog, CreateInput{Name: strings.Repeat("a", 100)})
	require.NoError(t, err)
	assert.Len(t, first.Slug, 100)

	second, err := svc.Create(ctx, entity.CategoryKindBlog, CreateInput{Name: strings.Repeat("a", 99) + "A"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 98)+"-1", second.Slug)
	assert.LessOrEqual(t, len(second.Slug), 100)
}

func TestService_Create_ExplicitSlugTooLong(t *testing.T) {
	svc, st := newService()

	_, err := svc.Create(context.Background(), entity.CategoryKindBlog, CreateInput{Name: "x", Slug: strings.Repeat("b", 500)})
	var ve *entity.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "slug", ve.Field)
	assert.Zero(t, st.ExistsCalls)
}

func TestService_Create_Validation(t *testing.T) {
	svc, st := newService()

	_, err := svc.Create(context.Background(), entity.CategoryKindPrompt, CreateInput{Name: "   "})
	var ve *entity.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.Zero(t, st.ExistsCalls, "invalid input never probes")
}

func TestService_Create_SymbolOnlyName(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, entity.CategoryKindPrompt, CreateInput{Name: "!!!"})
	require.NoError(t, err)
	assert.Equal(t, "", first.Slug)

	second, err := svc.Create(ctx, entity.CategoryKindPrompt, CreateInput{Name: "???"})
	require.NoError(t, err)
	assert.Equal(t, "-1", second.Slug)
}

func TestService_Create_RepositoryError(t *testing.T) {
	svc, st := newService()
	st.Err = errors.New("connection refused")

	_, err := svc.Create(context.Background(), entity.CategoryKindBlog, CreateInput{Name: "Go"})
	assert.ErrorContains(t, err, "connection refused")
}

/* ──────────────────────────────── Update / Delete ──────────────────────────────── */

func TestService_Update_KeepsSlug(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, entity.CategoryKindPrompt, CreateInput{Name: "Writing"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, entity.CategoryKindPrompt, c.Slug, UpdateInput{
		Name: strPtr("Creative Writing"),
		Icon: strPtr("pen"),
	})
	require.NoError(t, err)
	assert.Equal(t, "writing", updated.Slug)
	assert.Equal(t, "Creative Writing", updated.Name)

	got, err := svc.GetBySlug(ctx, entity.CategoryKindPrompt, "writing")
	require.NoError(t, err)
	assert.Equal(t, "pen", got.Icon)
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Update(context.Background(), entity.CategoryKindBlog, "missing", UpdateInput{})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, entity.CategoryKindBlog, CreateInput{Name: "Go"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entity.CategoryKindBlog, c.Slug))
	_, err = svc.GetBySlug(ctx, entity.CategoryKindBlog, c.Slug)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

/* ──────────────────────────────── Resolve / Seed ──────────────────────────────── */

func TestService_Resolve(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	id, err := svc.Resolve(ctx, entity.CategoryKindNews, "")
	require.NoError(t, err)
	assert.Nil(t, id)

	c, err := svc.Create(ctx, entity.CategoryKindNews, CreateInput{Name: "Science"})
	require.NoError(t, err)

	id, err = svc.Resolve(ctx, entity.CategoryKindNews, "science")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, c.ID, *id)

	_, err = svc.Resolve(ctx, entity.CategoryKindNews, "sport")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestService_Seed_SkipsExistingNames(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	seed := []CreateInput{{Name: "Writing"}, {Name: "Coding"}}
	n, err := svc.Seed(ctx, entity.CategoryKindPrompt, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.Seed(ctx, entity.CategoryKindPrompt, append(seed, CreateInput{Name: "Marketing"}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	cats, err := svc.List(ctx, entity.CategoryKindPrompt)
	require.NoError(t, err)
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Coding", "Marketing", "Writing"}, names)
}
