package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type PostRepo struct{ db DBTX }

func NewPostRepo(db DBTX) repository.PostRepository {
	return &PostRepo{db: db}
}

const postColumns = `id, title, slug, author_id, excerpt, content, featured_image, category_id,
       tags, views, likes, status, is_featured, created_at, updated_at, published_at`

func scanPost(s scanner) (*entity.Post, error) {
	var p entity.Post
	var categoryID sql.NullInt64
	var publishedAt sql.NullTime
	if err := s.Scan(
		&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.Excerpt, &p.Content, &p.FeaturedImage, &categoryID,
		&p.Tags, &p.Views, &p.Likes, &p.Status, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt, &publishedAt,
	); err != nil {
		return nil, err
	}
	p.CategoryID = int64Ptr(categoryID)
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	return &p, nil
}

func (repo *PostRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Post, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.Post, 0, 9)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (repo *PostRepo) get(ctx context.Context, op, where string, arg any) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + where + ` LIMIT 1`
	p, err := scanPost(repo.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (repo *PostRepo) Get(ctx context.Context, id int64) (*entity.Post, error) {
	return repo.get(ctx, "Get", "id = $1", id)
}

func (repo *PostRepo) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return repo.get(ctx, "GetBySlug", "slug = $1", slug)
}

func (repo *PostRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, repo.db, "ExistsBySlug",
		`SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)`, slug)
}

func postWhere(f repository.PostFilter) *whereBuilder {
	w := (&whereBuilder{}).eq("status", entity.PostStatusPublished)
	w.contains(f.Search, "title", "excerpt", "content", "tags")
	if f.CategoryID != nil {
		w.eq("category_id", *f.CategoryID)
	}
	return w
}

func (repo *PostRepo) ListPublished(ctx context.Context, f repository.PostFilter, offset, limit int) ([]*entity.Post, error) {
	w := postWhere(f)
	page, args := w.page(limit, offset)
	query := `
SELECT ` + postColumns + `
FROM posts
` + w.clause() + `
ORDER BY published_at DESC NULLS LAST, id DESC
` + page
	return repo.query(ctx, "ListPublished", query, args...)
}

func (repo *PostRepo) CountPublished(ctx context.Context, f repository.PostFilter) (int64, error) {
	w := postWhere(f)
	return count(ctx, repo.db, "CountPublished", `SELECT COUNT(*) FROM posts `+w.clause(), w.args...)
}

func (repo *PostRepo) ListFeatured(ctx context.Context, limit int) ([]*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE status = 'published' AND is_featured = TRUE
ORDER BY published_at DESC NULLS LAST
LIMIT $1`
	return repo.query(ctx, "ListFeatured", query, limit)
}

func (repo *PostRepo) ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE status = 'published' AND category_id = $1 AND id <> $2
ORDER BY published_at DESC NULLS LAST
LIMIT $3`
	return repo.query(ctx, "ListRelated", query, categoryID, excludeID, limit)
}

func (repo *PostRepo) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]*entity.Post, error) {
	const query = `
SELECT ` + postColumns + `
FROM posts
WHERE author_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	return repo.query(ctx, "ListByAuthor", query, authorID, limit, offset)
}

func (repo *PostRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return count(ctx, repo.db, "CountByAuthor", `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
}

func (repo *PostRepo) Create(ctx context.Context, p *entity.Post) error {
	const query = `
INSERT INTO posts (title, slug, author_id, excerpt, content, featured_image, category_id,
                   tags, status, is_featured, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.AuthorID, p.Excerpt, p.Content, p.FeaturedImage, nullInt64(p.CategoryID),
		p.Tags, p.Status, p.IsFeatured, p.PublishedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return wrapWrite("Create", err)
	}
	return nil
}

// Update leaves the slug, author and counters untouched.
func (repo *PostRepo) Update(ctx context.Context, p *entity.Post) error {
	const query = `
UPDATE posts SET
       title          = $1,
       excerpt        = $2,
       content        = $3,
       featured_image = $4,
       category_id    = $5,
       tags           = $6,
       status         = $7,
       is_featured    = $8,
       published_at   = $9,
       updated_at     = NOW()
WHERE id = $10`
	return execAffected(ctx, repo.db, "Update", query,
		p.Title, p.Excerpt, p.Content, p.FeaturedImage, nullInt64(p.CategoryID),
		p.Tags, p.Status, p.IsFeatured, p.PublishedAt, p.ID)
}

func (repo *PostRepo) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "Delete", `DELETE FROM posts WHERE id = $1`, id)
}

func (repo *PostRepo) IncrementViews(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "IncrementViews",
		`UPDATE posts SET views = views + 1 WHERE id = $1`, id)
}
