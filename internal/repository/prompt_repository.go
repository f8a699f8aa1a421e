package repository

import (
	"context"

	"prompt-library/internal/domain/entity"
)

// PromptSort is one of the whitelisted orderings for prompt listings.
type PromptSort string

const (
	PromptSortNewest  PromptSort = "-created_at"
	PromptSortViews   PromptSort = "-views"
	PromptSortUpvotes PromptSort = "-upvotes"
)

// Valid reports whether s is a supported ordering.
func (s PromptSort) Valid() bool {
	switch s {
	case PromptSortNewest, PromptSortViews, PromptSortUpvotes:
		return true
	}
	return false
}

// PromptFilter contains optional filters for published prompt listings.
type PromptFilter struct {
	Search     string            // substring of title, description or tags
	CategoryID *int64            // Optional: Filter by category ID
	Difficulty entity.Difficulty // Optional
	AIModel    entity.AIModel    // Optional
	Sort       PromptSort        // defaults to PromptSortNewest
}

type PromptRepository interface {
	Get(ctx context.Context, id int64) (*entity.Prompt, error)
	// GetBySlug returns (nil, nil) when no prompt has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Prompt, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, f PromptFilter, offset, limit int) ([]*entity.Prompt, error)
	CountPublished(ctx context.Context, f PromptFilter) (int64, error)
	ListFeatured(ctx context.Context, limit int) ([]*entity.Prompt, error)
	// ListRelated returns published prompts of the same category, excluding excludeID.
	ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*entity.Prompt, error)
	ListByAuthor(ctx context.Context, authorID int64, publishedOnly bool, offset, limit int) ([]*entity.Prompt, error)
	CountByAuthor(ctx context.Context, authorID int64, publishedOnly bool) (int64, error)
	SumViewsByAuthor(ctx context.Context, authorID int64) (int64, error)
	Create(ctx context.Context, p *entity.Prompt) error
	Update(ctx context.Context, p *entity.Prompt) error
	Delete(ctx context.Context, id int64) error
	// IncrementViews bumps the counter in SQL so concurrent readers never lose a view.
	IncrementViews(ctx context.Context, id int64) error
}

// BookmarkRepository stores the (user, prompt) bookmark pairs.
type BookmarkRepository interface {
	Exists(ctx context.Context, userID, promptID int64) (bool, error)
	Add(ctx context.Context, userID, promptID int64) error
	Remove(ctx context.Context, userID, promptID int64) error
	// ListPrompts returns the bookmarked prompts, most recently bookmarked first.
	ListPrompts(ctx context.Context, userID int64, offset, limit int) ([]*entity.Prompt, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
