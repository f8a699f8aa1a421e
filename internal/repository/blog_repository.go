package repository

import (
	"context"

	"prompt-library/internal/domain/entity"
)

// PostFilter contains optional filters for published post listings.
type PostFilter struct {
	Search     string // substring of title, excerpt, content or tags
	CategoryID *int64
}

type PostRepository interface {
	Get(ctx context.Context, id int64) (*entity.Post, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ListPublished orders by published_at DESC.
	ListPublished(ctx context.Context, f PostFilter, offset, limit int) ([]*entity.Post, error)
	CountPublished(ctx context.Context, f PostFilter) (int64, error)
	ListFeatured(ctx context.Context, limit int) ([]*entity.Post, error)
	ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*entity.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]*entity.Post, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	Create(ctx context.Context, p *entity.Post) error
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Get(ctx context.Context, id int64) (*entity.Comment, error)
	Create(ctx context.Context, c *entity.Comment) error
	// ListApproved returns approved comments oldest first, with AuthorName filled.
	ListApproved(ctx context.Context, postID int64) ([]*entity.Comment, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
}
