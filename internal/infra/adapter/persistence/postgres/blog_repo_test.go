package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/infra/adapter/persistence/postgres"
	"prompt-library/internal/repository"
)

var postCols = []string{
	"id", "title", "slug", "author_id", "excerpt", "content", "featured_image", "category_id",
	"tags", "views", "likes", "status", "is_featured", "created_at", "updated_at", "published_at",
}

func postRows(ps ...*entity.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows(postCols)
	for _, p := range ps {
		var category, published any
		if p.CategoryID != nil {
			category = *p.CategoryID
		}
		if p.PublishedAt != nil {
			published = *p.PublishedAt
		}
		rows.AddRow(p.ID, p.Title, p.Slug, p.AuthorID, p.Excerpt, p.Content, p.FeaturedImage, category,
			string(p.Tags), p.Views, p.Likes, string(p.Status), p.IsFeatured, p.CreatedAt, p.UpdatedAt, published)
	}
	return rows
}

/* ──────────────────────────────── 1. Posts ──────────────────────────────── */

func TestPostRepo_GetBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	want := &entity.Post{
		ID: 1, Title: "Hello", Slug: "hello", AuthorID: 2, Excerpt: "e", Content: "# Hi",
		Status: entity.PostStatusPublished, CreatedAt: ts, UpdatedAt: ts, PublishedAt: &ts,
	}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE slug = $1`)).
		WithArgs("hello").
		WillReturnRows(postRows(want))

	got, err := postgres.NewPostRepo(db).GetBySlug(context.Background(), "hello")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPostRepo_ListPublished(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE status = $1 AND (title ILIKE $2 OR excerpt ILIKE $2 OR content ILIKE $2 OR tags ILIKE $2)`)).
		WithArgs("published", "%50\\%%", 9, 0).
		WillReturnRows(postRows())

	_, err := postgres.NewPostRepo(db).ListPublished(context.Background(), repository.PostFilter{Search: "50%"}, 0, 9)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepo_Create_PublishedAt(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p := &entity.Post{Title: "Hello", Slug: "hello", AuthorID: 2, Excerpt: "e", Content: "c",
		Status: entity.PostStatusPublished, PublishedAt: &ts}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
		WithArgs("Hello", "hello", int64(2), "e", "c", "", nil, "", "published", false, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(5, ts, ts))

	require.NoError(t, postgres.NewPostRepo(db).Create(context.Background(), p))
	assert.Equal(t, int64(5), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepo_Create_DuplicateSlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"})

	err := postgres.NewPostRepo(db).Create(context.Background(), &entity.Post{Slug: "hello"})
	assert.ErrorIs(t, err, entity.ErrDuplicateSlug)
}

/* ──────────────────────────────── 2. Comments ──────────────────────────────── */

func TestCommentRepo_ListApproved(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ts := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.post_id = $1 AND c.is_approved = TRUE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "author_id", "username", "content", "is_approved", "created_at"}).
			AddRow(3, 1, 2, "alice", "Nice post", true, ts))

	got, err := postgres.NewCommentRepo(db).ListApproved(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].AuthorName)
}

func TestCommentRepo_SetApproved_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE comments SET is_approved`).
		WithArgs(false, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := postgres.NewCommentRepo(db).SetApproved(context.Background(), 99, false)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
