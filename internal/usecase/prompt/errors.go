// Package prompt provides the prompt library use cases: browsing, submitting
// and editing prompts, and per-user bookmarks.
package prompt

import "prompt-library/internal/domain/entity"

var (
	// ErrPromptNotFound indicates that no visible prompt has the slug.
	ErrPromptNotFound = entity.NotFound("prompt")

	// ErrCategoryNotFound indicates that the category slug given as input
	// does not name a prompt category. List filters treat it as an empty page.
	ErrCategoryNotFound = entity.NotFound("category")
)

// Limits of the secondary listings.
const (
	FeaturedLimit = 3
	RelatedLimit  = 4
)
