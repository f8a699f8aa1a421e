// Package blog provides the blog use cases: published listings, post pages
// with rendered Markdown, authoring, and comments with moderation.
package blog

import (
	"fmt"

	"prompt-library/internal/domain/entity"
)

var (
	// ErrPostNotFound indicates that no visible post has the slug.
	ErrPostNotFound = entity.NotFound("post")

	// ErrCommentNotFound indicates that the comment ID is unknown.
	ErrCommentNotFound = entity.NotFound("comment")

	// ErrCategoryNotFound indicates an unknown blog category slug.
	ErrCategoryNotFound = entity.NotFound("category")

	// ErrStaffOnly is returned when a member calls a moderation use case.
	ErrStaffOnly = fmt.Errorf("staff only: %w", entity.ErrForbidden)
)

const (
	FeaturedLimit = 3
	RelatedLimit  = 3

	// MaxCommentLength bounds a comment after markup is stripped.
	MaxCommentLength = 2000
)
