package postgres

import (
	"context"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type BookmarkRepo struct{ db DBTX }

func NewBookmarkRepo(db DBTX) repository.BookmarkRepository {
	return &BookmarkRepo{db: db}
}

func (repo *BookmarkRepo) Exists(ctx context.Context, userID, promptID int64) (bool, error) {
	return exists(ctx, repo.db, "Exists",
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND prompt_id = $2)`, userID, promptID)
}

// Add is idempotent: bookmarking twice leaves one row.
func (repo *BookmarkRepo) Add(ctx context.Context, userID, promptID int64) error {
	const query = `
INSERT INTO bookmarks (user_id, prompt_id)
VALUES ($1, $2)
ON CONFLICT ON CONSTRAINT bookmarks_user_prompt_key DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, userID, promptID); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (repo *BookmarkRepo) Remove(ctx context.Context, userID, promptID int64) error {
	if _, err := repo.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND prompt_id = $2`, userID, promptID); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	return nil
}

func (repo *BookmarkRepo) ListPrompts(ctx context.Context, userID int64, offset, limit int) ([]*entity.Prompt, error) {
	const query = `
SELECT ` + promptColumns + `
FROM bookmarks b
JOIN prompts p ON p.id = b.prompt_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPrompts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	prompts := make([]*entity.Prompt, 0, 12)
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPrompts: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

func (repo *BookmarkRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, repo.db, "CountByUser", `SELECT COUNT(*) FROM bookmarks WHERE user_id = $1`, userID)
}
