package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type CategoryRepo struct{ db DBTX }

func NewCategoryRepo(db DBTX) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

const categoryColumns = `id, kind, name, slug, description, icon, color, created_at`

func scanCategory(s scanner) (*entity.Category, error) {
	var c entity.Category
	if err := s.Scan(&c.ID, &c.Kind, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (repo *CategoryRepo) List(ctx context.Context, kind entity.CategoryKind) ([]*entity.Category, error) {
	const query = `
SELECT ` + categoryColumns + `
FROM categories
WHERE kind = $1
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.Category, 0, 16)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	const query = `
SELECT ` + categoryColumns + `
FROM categories
WHERE id = $1
LIMIT 1`
	c, err := scanCategory(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return c, nil
}

func (repo *CategoryRepo) GetBySlug(ctx context.Context, kind entity.CategoryKind, slug string) (*entity.Category, error) {
	const query = `
SELECT ` + categoryColumns + `
FROM categories
WHERE kind = $1 AND slug = $2
LIMIT 1`
	c, err := scanCategory(repo.db.QueryRowContext(ctx, query, kind, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return c, nil
}

func (repo *CategoryRepo) ExistsBySlug(ctx context.Context, kind entity.CategoryKind, slug string) (bool, error) {
	return exists(ctx, repo.db, "ExistsBySlug",
		`SELECT EXISTS(SELECT 1 FROM categories WHERE kind = $1 AND slug = $2)`, kind, slug)
}

func (repo *CategoryRepo) ExistsByName(ctx context.Context, kind entity.CategoryKind, name string) (bool, error) {
	return exists(ctx, repo.db, "ExistsByName",
		`SELECT EXISTS(SELECT 1 FROM categories WHERE kind = $1 AND name = $2)`, kind, name)
}

func (repo *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const query = `
INSERT INTO categories (kind, name, slug, description, icon, color)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		c.Kind, c.Name, c.Slug, c.Description, c.Icon, c.Color,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return wrapWrite("Create", err)
	}
	return nil
}

// Update never touches the slug.
func (repo *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	const query = `
UPDATE categories SET
       name        = $1,
       description = $2,
       icon        = $3,
       color       = $4
WHERE id = $5`
	return execAffected(ctx, repo.db, "Update", query,
		c.Name, c.Description, c.Icon, c.Color, c.ID)
}

func (repo *CategoryRepo) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, repo.db, "Delete", `DELETE FROM categories WHERE id = $1`, id)
}
