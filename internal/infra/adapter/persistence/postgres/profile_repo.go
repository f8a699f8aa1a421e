package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type ProfileRepo struct{ db DBTX }

func NewProfileRepo(db DBTX) repository.ProfileRepository {
	return &ProfileRepo{db: db}
}

func (repo *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Profile, error) {
	const query = `
SELECT id, user_id, bio, avatar_url, website, location, theme, language,
       total_prompts, total_bookmarks, created_at, updated_at
FROM user_profiles
WHERE user_id = $1`
	var p entity.Profile
	err := repo.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.AvatarURL, &p.Website, &p.Location, &p.Theme, &p.Language,
		&p.TotalPrompts, &p.TotalBookmarks, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return &p, nil
}

func (repo *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	const query = `
UPDATE user_profiles SET
       bio        = $1,
       avatar_url = $2,
       website    = $3,
       location   = $4,
       theme      = $5,
       language   = $6,
       updated_at = NOW()
WHERE user_id = $7`
	return execAffected(ctx, repo.db, "Update", query,
		p.Bio, p.AvatarURL, p.Website, p.Location, p.Theme, p.Language, p.UserID)
}

func (repo *ProfileRepo) UpdateStats(ctx context.Context, userID, totalPrompts, totalBookmarks int64) error {
	const query = `
UPDATE user_profiles SET
       total_prompts   = $1,
       total_bookmarks = $2,
       updated_at      = NOW()
WHERE user_id = $3`
	return execAffected(ctx, repo.db, "UpdateStats", query, totalPrompts, totalBookmarks, userID)
}
