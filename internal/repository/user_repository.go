package repository

import (
	"context"

	"prompt-library/internal/domain/entity"
)

type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByLogin matches the username or, failing that, the email (case-insensitive).
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	// CreateWithProfile inserts the user and its profile in one transaction.
	// Username or email collisions are reported as entity.ErrDuplicateUser.
	CreateWithProfile(ctx context.Context, u *entity.User, p *entity.Profile) error
	ListIDs(ctx context.Context) ([]int64, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	UpdateStats(ctx context.Context, userID, totalPrompts, totalBookmarks int64) error
}
