package repository

import (
	"context"

	"prompt-library/internal/domain/entity"
)

// NewsFilter contains optional filters for published news listings.
type NewsFilter struct {
	Search     string // substring of title, subtitle, summary, content or tags
	CategoryID *int64
	Priority   entity.Priority
}

type NewsRepository interface {
	Get(ctx context.Context, id int64) (*entity.NewsArticle, error)
	GetBySlug(ctx context.Context, slug string) (*entity.NewsArticle, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ListPublished orders by published_at DESC.
	ListPublished(ctx context.Context, f NewsFilter, offset, limit int) ([]*entity.NewsArticle, error)
	CountPublished(ctx context.Context, f NewsFilter) (int64, error)
	ListFeatured(ctx context.Context, limit int) ([]*entity.NewsArticle, error)
	ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*entity.NewsArticle, error)
	// ListAll includes unpublished articles, for staff.
	ListAll(ctx context.Context, offset, limit int) ([]*entity.NewsArticle, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, a *entity.NewsArticle) error
	Update(ctx context.Context, a *entity.NewsArticle) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}
