package blog

import (
	"context"
	"fmt"
	"unicode/utf8"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/metrics"
	"prompt-library/pkg/markup"
)

// AddComment stores an approved comment by author on the published post.
// Markup is stripped from content.
func (s *Service) AddComment(ctx context.Context, author *entity.User, slug, content string) (*entity.Comment, error) {
	text := markup.PlainText(content)
	if text == "" {
		return nil, &entity.ValidationError{Field: "content", Message: "is required"}
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return nil, &entity.ValidationError{Field: "content", Message: fmt.Sprintf("must be at most %d characters", MaxCommentLength)}
	}

	p, err := s.published(ctx, slug)
	if err != nil {
		return nil, err
	}
	c := &entity.Comment{
		PostID:     p.ID,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Content:    text,
		IsApproved: true,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordCommentCreated()
	return c, nil
}

// ModerateComment approves or hides a comment. Staff only.
func (s *Service) ModerateComment(ctx context.Context, actor *entity.User, id int64, approved bool) (*entity.Comment, error) {
	if actor == nil || !actor.IsStaff {
		return nil, ErrStaffOnly
	}
	c, err := s.Comments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}
	if err := s.Comments.SetApproved(ctx, id, approved); err != nil {
		return nil, fmt.Errorf("moderate comment: %w", err)
	}
	c.IsApproved = approved
	return c, nil
}
