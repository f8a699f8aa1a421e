package repository

import (
	"context"

	"prompt-library/internal/domain/entity"
)

// CategoryRepository stores the blog, news and prompt categories. Every
// lookup is scoped to one kind because slugs and names are unique per kind.
type CategoryRepository interface {
	List(ctx context.Context, kind entity.CategoryKind) ([]*entity.Category, error)
	Get(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, kind entity.CategoryKind, slug string) (*entity.Category, error)
	ExistsBySlug(ctx context.Context, kind entity.CategoryKind, slug string) (bool, error)
	ExistsByName(ctx context.Context, kind entity.CategoryKind, name string) (bool, error)
	// Create inserts c and fills ID and CreatedAt. A unique violation on the
	// slug index is reported as entity.ErrDuplicateSlug.
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	// Delete removes the category; content rows keep a NULL category.
	Delete(ctx context.Context, id int64) error
}
