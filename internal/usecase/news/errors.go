// Package news provides the news use cases. Readers browse published
// articles; staff manage them.
package news

import (
	"fmt"

	"prompt-library/internal/domain/entity"
)

var (
	// ErrArticleNotFound indicates that no visible article has the slug.
	ErrArticleNotFound = entity.NotFound("article")

	// ErrCategoryNotFound indicates an unknown news category slug.
	ErrCategoryNotFound = entity.NotFound("category")

	// ErrStaffOnly is returned when a member calls a management use case.
	ErrStaffOnly = fmt.Errorf("staff only: %w", entity.ErrForbidden)
)

const (
	BreakingLimit = 3
	FeaturedLimit = 4
	LatestLimit   = 5
	RelatedLimit  = 4
)
