package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type NewsRepo struct{ db DBTX }

func NewNewsRepo(db DBTX) repository.NewsRepository {
	return &NewsRepo{db: db}
}

const newsColumns = `id, title, slug, subtitle, summary, content, featured_image, source, category_id,
       priority, tags, views, is_published, is_featured, published_at, updated_at`

func scanNews(s scanner) (*entity.NewsArticle, error) {
	var a entity.NewsArticle
	var categoryID sql.NullInt64
	if err := s.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Subtitle, &a.Summary, &a.Content, &a.FeaturedImage, &a.Source, &categoryID,
		&a.Priority, &a.Tags, &a.Views, &a.IsPublished, &a.IsFeatured, &a.PublishedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.CategoryID = int64Ptr(categoryID)
	return &a, nil
}

func (repo *NewsRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.NewsArticle, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.NewsArticle, 0, 12)
	for rows.Next() {
		a, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (repo *NewsRepo) get(ctx context.Context, op, where string, arg any) (*entity.NewsArticle, error) {
	query := `SELECT ` + newsColumns + ` FROM news_articles WHERE ` + where + ` LIMIT 1`
	a, err := scanNews(repo.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.NewsArticle, error) {
	return repo.get(ctx, "Get", "id = $1", id)
}

func (repo *NewsRepo) GetBySlug(ctx context.Context, slug string) (*entity.NewsArticle, error) {
	return repo.get(ctx, "GetBySlug", "slug = $1", slug)
}

func (repo *NewsRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, repo.db, "ExistsBySlug",
		`SELECT EXISTS(SELECT 1 FROM news_articles WHERE slug = $1)`, slug)
}

func newsWhere(f repository.NewsFilter) *whereBuilder {
	w := (&whereBuilder{}).raw("is_published = TRUE")
	w.contains(f.Search, "title", "subtitle", "summary", "content", "tags")
	if f.CategoryID != nil {
		w.eq("category_id", *f.CategoryID)
	}
	if f.Priority != "" {
		w.eq("priority", f.Priority)
	}
	return w
}

func (repo *NewsRepo) ListPublished(ctx context.Context, f repository.NewsFilter, offset, limit int) ([]*entity.NewsArticle, error) {
	w := newsWhere(f)
	page, args := w.page(limit, offset)
	query := `
SELECT ` + newsColumns + `
FROM news_articles
` + w.clause() + `
ORDER BY published_at DESC, id DESC
` + page
	return repo.query(ctx, "ListPublished", query, args...)
}

func (repo *NewsRepo) CountPublished(ctx context.Context, f repository.NewsFilter) (int64, error) {
	w := newsWhere(f)
	return count(ctx, repo.db, "CountPublished", `SELECT COUNT(*) FROM news_articles `+w.clause(), w.args...)
}

func (repo *NewsRepo) ListFeatured(ctx context.Context, limit int) ([]*entity.NewsArticle, error) {
	const query = `
SELECT ` + newsColumns + `
FROM news_articles
WHERE is_published = TRUE AND is_featured = TRUE
ORDER BY published_at DESC
LIMIT $1`
	return repo.query(ctx, "ListFeatured", query, limit)
}

func (repo *NewsRepo) ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*entity.NewsArticle, error) {
	const query = `
SELECT ` + newsColumns + `
FROM news_articles
WHERE is_published = TRUE AND category_id = $1 AND id <> $2
ORDER BY published_at DESC
LIMIT $3`
	return repo.query(ctx, "ListRelated", query, categoryID, excludeID, limit)
}

func (repo *NewsRepo) ListAll(ctx context.Context, offset, limit int) ([]*entity.NewsArticle, error) {
	const query = `
SELECT ` + newsColumns + `
FROM news_articles
ORDER BY published_at DESC, id DESC
LIMIT $1 OFFSET $2`
	return repo.query(ctx, "ListAll", query, limit, offset)
}

func (repo *NewsRepo) CountAll(ctx context.Context) (int64, error) {
	return count(ctx, repo.db, "CountAll", `SELECT COUNT(*) FROM news_articles`)
}

// Create stamps published_at with the database clock.
func (repo *NewsRepo) Create(ctx context.Context, a *entity.NewsArticle) error {
	const query = `
INSERT INTO news_articles (title, slug, subtitle, summary, content, featured_image, source,
                           category_id, priority, tags, is_published, is_featured)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, published_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		a.Title, a.Slug, a.Subtitle, a.Summary, a.Content, a.FeaturedImage, a.Source,
		nullInt64(a.CategoryID), a.Priority, a.Tags, a.IsPublished, a.IsFeatured,
	).Scan(&a.ID, &a.PublishedAt, &a.UpdatedAt)
	if err != nil {
		return wrapWrite("Create", err)
	}
	return nil
}

func (repo *NewsRepo) Update(ctx context.Context, a *entity.NewsArticle) error {
	const query = `
UPDATE news_articles SET
       title          = $1,
       subtitle       = $2,
       summary        = $3,
       content        = $4,
       featured_image = $5,
       source         = $6,
       category_id    = $7,
       priority       = $8,
       tags           = $9,
       is_published   = $10,
       is_featured    = $11,
       updated_at     = NOW()
WHERE id = $12`
	return execAffected(ctx, repo.db, "Update", query,
		a.Title, a.Subtitle, a.Summary, a.Content, a.FeaturedImage, a.Source,
		nullInt64(a.CategoryID), a.Priority, a.Tags, a.IsPublished, a.IsFeatured, a.ID)
}

func (repo *NewsRepo) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "Delete", `DELETE FROM news_articles WHERE id = $1`, id)
}

func (repo *NewsRepo) IncrementViews(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "IncrementViews",
		`UPDATE news_articles SET views = views + 1 WHERE id = $1`, id)
}
