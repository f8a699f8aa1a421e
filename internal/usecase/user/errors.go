// Package user provides registration, authentication and profile use cases.
package user

import (
	"prompt-library/internal/domain/entity"
)

var (
	// ErrUserNotFound indicates that no user has the username.
	ErrUserNotFound = entity.NotFound("user")

	// ErrDuplicateUser indicates the username or email is already registered.
	ErrDuplicateUser = entity.ErrDuplicateUser
)

// RecentPromptsLimit is the number of prompts shown on a profile page.
const RecentPromptsLimit = 6
