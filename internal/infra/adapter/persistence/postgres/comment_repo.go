package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type CommentRepo struct{ db DBTX }

func NewCommentRepo(db DBTX) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func (repo *CommentRepo) Get(ctx context.Context, id int64) (*entity.Comment, error) {
	const query = `
SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.is_approved, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.id = $1`
	var c entity.Comment
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.IsApproved, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &c, nil
}

func (repo *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	const query = `
INSERT INTO comments (post_id, author_id, content, is_approved)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	if err := repo.db.QueryRowContext(ctx, query, c.PostID, c.AuthorID, c.Content, c.IsApproved).
		Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CommentRepo) ListApproved(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	const query = `
SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.is_approved, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.post_id = $1 AND c.is_approved = TRUE
ORDER BY c.created_at ASC`
	rows, err := repo.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ListApproved: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*entity.Comment, 0, 8)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.IsApproved, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListApproved: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (repo *CommentRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	return execAffected(ctx, repo.db, "SetApproved",
		`UPDATE comments SET is_approved = $1 WHERE id = $2`, approved, id)
}
