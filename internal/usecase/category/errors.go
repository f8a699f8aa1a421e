// Package category provides the use cases for the blog, news and prompt
// category collections.
package category

import "prompt-library/internal/domain/entity"

var (
	// ErrCategoryNotFound indicates that no category of the kind has the slug.
	ErrCategoryNotFound = entity.NotFound("category")

	// ErrDuplicateName indicates that the kind already has a category with the name.
	ErrDuplicateName = entity.ErrDuplicateName
)
