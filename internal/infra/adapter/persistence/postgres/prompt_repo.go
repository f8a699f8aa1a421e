package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type PromptRepo struct{ db DBTX }

func NewPromptRepo(db DBTX) repository.PromptRepository {
	return &PromptRepo{db: db}
}

const promptColumns = `p.id, p.title, p.slug, p.description, p.prompt_text, p.category_id,
       p.difficulty, p.ai_model, p.tags, p.author_id, p.views, p.upvotes,
       p.is_featured, p.is_published, p.created_at, p.updated_at`

func scanPrompt(s scanner) (*entity.Prompt, error) {
	var p entity.Prompt
	var categoryID sql.NullInt64
	if err := s.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.PromptText, &categoryID,
		&p.Difficulty, &p.AIModel, &p.Tags, &p.AuthorID, &p.Views, &p.Upvotes,
		&p.IsFeatured, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.CategoryID = int64Ptr(categoryID)
	return &p, nil
}

func (repo *PromptRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Prompt, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	prompts := make([]*entity.Prompt, 0, 12)
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

func (repo *PromptRepo) get(ctx context.Context, op, where string, arg any) (*entity.Prompt, error) {
	query := `
SELECT ` + promptColumns + `
FROM prompts p
WHERE ` + where + `
LIMIT 1`
	p, err := scanPrompt(repo.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (repo *PromptRepo) Get(ctx context.Context, id int64) (*entity.Prompt, error) {
	return repo.get(ctx, "Get", "p.id = $1", id)
}

func (repo *PromptRepo) GetBySlug(ctx context.Context, slug string) (*entity.Prompt, error) {
	return repo.get(ctx, "GetBySlug", "p.slug = $1", slug)
}

func (repo *PromptRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, repo.db, "ExistsBySlug",
		`SELECT EXISTS(SELECT 1 FROM prompts WHERE slug = $1)`, slug)
}

func promptWhere(f repository.PromptFilter) *whereBuilder {
	w := (&whereBuilder{}).raw("p.is_published = TRUE")
	w.contains(f.Search, "p.title", "p.description", "p.tags")
	if f.CategoryID != nil {
		w.eq("p.category_id", *f.CategoryID)
	}
	if f.Difficulty != "" {
		w.eq("p.difficulty", f.Difficulty)
	}
	if f.AIModel != "" {
		w.eq("p.ai_model", f.AIModel)
	}
	return w
}

func promptOrder(s repository.PromptSort) string {
	switch s {
	case repository.PromptSortViews:
		return "p.views DESC, p.created_at DESC"
	case repository.PromptSortUpvotes:
		return "p.upvotes DESC, p.created_at DESC"
	default:
		return "p.created_at DESC"
	}
}

func (repo *PromptRepo) ListPublished(ctx context.Context, f repository.PromptFilter, offset, limit int) ([]*entity.Prompt, error) {
	w := promptWhere(f)
	page, args := w.page(limit, offset)
	query := `
SELECT ` + promptColumns + `
FROM prompts p
` + w.clause() + `
ORDER BY ` + promptOrder(f.Sort) + `
` + page
	return repo.query(ctx, "ListPublished", query, args...)
}

func (repo *PromptRepo) CountPublished(ctx context.Context, f repository.PromptFilter) (int64, error) {
	w := promptWhere(f)
	return count(ctx, repo.db, "CountPublished", `SELECT COUNT(*) FROM prompts p `+w.clause(), w.args...)
}

func (repo *PromptRepo) ListFeatured(ctx context.Context, limit int) ([]*entity.Prompt, error) {
	const query = `
SELECT ` + promptColumns + `
FROM prompts p
WHERE p.is_published = TRUE AND p.is_featured = TRUE
ORDER BY p.created_at DESC
LIMIT $1`
	return repo.query(ctx, "ListFeatured", query, limit)
}

func (repo *PromptRepo) ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*entity.Prompt, error) {
	const query = `
SELECT ` + promptColumns + `
FROM prompts p
WHERE p.is_published = TRUE AND p.category_id = $1 AND p.id <> $2
ORDER BY p.created_at DESC
LIMIT $3`
	return repo.query(ctx, "ListRelated", query, categoryID, excludeID, limit)
}

func authorWhere(authorID int64, publishedOnly bool) *whereBuilder {
	w := (&whereBuilder{}).eq("p.author_id", authorID)
	if publishedOnly {
		w.raw("p.is_published = TRUE")
	}
	return w
}

func (repo *PromptRepo) ListByAuthor(ctx context.Context, authorID int64, publishedOnly bool, offset, limit int) ([]*entity.Prompt, error) {
	w := authorWhere(authorID, publishedOnly)
	page, args := w.page(limit, offset)
	query := `
SELECT ` + promptColumns + `
FROM prompts p
` + w.clause() + `
ORDER BY p.created_at DESC
` + page
	return repo.query(ctx, "ListByAuthor", query, args...)
}

func (repo *PromptRepo) CountByAuthor(ctx context.Context, authorID int64, publishedOnly bool) (int64, error) {
	w := authorWhere(authorID, publishedOnly)
	return count(ctx, repo.db, "CountByAuthor", `SELECT COUNT(*) FROM prompts p `+w.clause(), w.args...)
}

func (repo *PromptRepo) SumViewsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return count(ctx, repo.db, "SumViewsByAuthor",
		`SELECT COALESCE(SUM(views), 0) FROM prompts WHERE author_id = $1 AND is_published = TRUE`, authorID)
}

func (repo *PromptRepo) Create(ctx context.Context, p *entity.Prompt) error {
	const query = `
INSERT INTO prompts (title, slug, description, prompt_text, category_id, difficulty, ai_model,
                     tags, author_id, is_featured, is_published)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Description, p.PromptText, nullInt64(p.CategoryID), p.Difficulty, p.AIModel,
		p.Tags, p.AuthorID, p.IsFeatured, p.IsPublished,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return wrapWrite("Create", err)
	}
	return nil
}

// Update writes the editable columns. The slug, author and counters are left alone.
func (repo *PromptRepo) Update(ctx context.Context, p *entity.Prompt) error {
	const query = `
UPDATE prompts SET
       title        = $1,
       description  = $2,
       prompt_text  = $3,
       category_id  = $4,
       difficulty   = $5,
       ai_model     = $6,
       tags         = $7,
       is_featured  = $8,
       is_published = $9,
       updated_at   = NOW()
WHERE id = $10`
	return execAffected(ctx, repo.db, "Update", query,
		p.Title, p.Description, p.PromptText, nullInt64(p.CategoryID), p.Difficulty, p.AIModel,
		p.Tags, p.IsFeatured, p.IsPublished, p.ID)
}

func (repo *PromptRepo) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "Delete", `DELETE FROM prompts WHERE id = $1`, id)
}

func (repo *PromptRepo) IncrementViews(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "IncrementViews",
		`UPDATE prompts SET views = views + 1 WHERE id = $1`, id)
}
