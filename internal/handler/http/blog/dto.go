// Package blog provides the HTTP handlers for blog posts and their comments.
package blog

import (
	"time"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/category"
	blogUC "prompt-library/internal/usecase/blog"
)

// PostDTO represents the JSON structure for post data transfer. Content is
// the Markdown source.
type PostDTO struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	AuthorID      int64      `json:"author_id"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	CategoryID    *int64     `json:"category_id"`
	Tags          []string   `json:"tags"`
	Views         int64      `json:"views"`
	Likes         int64      `json:"likes"`
	Status        string     `json:"status"`
	IsFeatured    bool       `json:"is_featured"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
}

// CommentDTO represents the JSON structure for a comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// DetailDTO is the post page. ContentHTML is the rendered, sanitised body.
type DetailDTO struct {
	Post          PostDTO       `json:"post"`
	ContentHTML   string        `json:"content_html"`
	Category      *category.DTO `json:"category"`
	Comments      []CommentDTO  `json:"comments"`
	CommentsCount int           `json:"comments_count"`
	Related       []PostDTO     `json:"related"`
}

// ToPostDTO converts p.
func ToPostDTO(p *entity.Post) PostDTO {
	return PostDTO{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		AuthorID:      p.AuthorID,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		CategoryID:    p.CategoryID,
		Tags:          p.Tags.Split(),
		Views:         p.Views,
		Likes:         p.Likes,
		Status:        string(p.Status),
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		PublishedAt:   p.PublishedAt,
	}
}

// ToPostDTOs converts ps, never returning nil.
func ToPostDTOs(ps []*entity.Post) []PostDTO {
	out := make([]PostDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToPostDTO(p))
	}
	return out
}

func toCommentDTO(c *entity.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
	}
}

func toDetailDTO(d *blogUC.Detail) DetailDTO {
	comments := make([]CommentDTO, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, toCommentDTO(c))
	}
	return DetailDTO{
		Post:          ToPostDTO(d.Post),
		ContentHTML:   d.ContentHTML,
		Category:      category.ToDTO(d.Category),
		Comments:      comments,
		CommentsCount: d.CommentsCount,
		Related:       ToPostDTOs(d.Related),
	}
}

type createRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featured_image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	PublishNow    bool     `json:"publish_now"`
	IsFeatured    *bool    `json:"is_featured"`
}

type updateRequest struct {
	Title         *string  `json:"title"`
	Excerpt       *string  `json:"excerpt"`
	Content       *string  `json:"content"`
	FeaturedImage *string  `json:"featured_image"`
	Category      *string  `json:"category"`
	Tags          []string `json:"tags"`
	PublishNow    bool     `json:"publish_now"`
	Status        *string  `json:"status"`
	IsFeatured    *bool    `json:"is_featured"`
}

func (req updateRequest) input() blogUC.UpdateInput {
	in := blogUC.UpdateInput{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Category:      req.Category,
		Tags:          req.Tags,
		PublishNow:    req.PublishNow,
		IsFeatured:    req.IsFeatured,
	}
	if req.Status != nil {
		s := entity.PostStatus(*req.Status)
		in.Status = &s
	}
	return in
}

type commentRequest struct {
	Content string `json:"content"`
}

type moderateRequest struct {
	Approved bool `json:"approved"`
}
