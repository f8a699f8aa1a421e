package entity

import (
	"fmt"
	"time"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a blog post.
type Post struct {
	ID            int64
	Title         string
	Slug          string
	AuthorID      int64
	Excerpt       string
	Content       string
	FeaturedImage string
	CategoryID    *int64
	Tags          Tags
	Views         int64
	Likes         int64
	Status        PostStatus
	IsFeatured    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PublishedAt   *time.Time
}

// Publish marks the post published, stamping PublishedAt the first time.
func (p *Post) Publish(now time.Time) {
	p.Status = PostStatusPublished
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

// IsPublished reports whether readers can see the post.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Validate checks the user editable fields.
func (p *Post) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(p.Title) > 200 {
		return &ValidationError{Field: "title", Message: "must be at most 200 characters"}
	}
	if p.Excerpt == "" {
		return &ValidationError{Field: "excerpt", Message: "is required"}
	}
	if len([]rune(p.Excerpt)) > 300 {
		return &ValidationError{Field: "excerpt", Message: "must be at most 300 characters"}
	}
	if p.Content == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Status != PostStatusDraft && p.Status != PostStatusPublished {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", p.Status)}
	}
	if p.FeaturedImage != "" {
		if err := ValidateURL(p.FeaturedImage); err != nil {
			return &ValidationError{Field: "featured_image", Message: "must be a valid http(s) URL"}
		}
	}
	p.Tags = p.Tags.Normalize()
	if len(p.Tags) > 200 {
		return &ValidationError{Field: "tags", Message: "must be at most 200 characters"}
	}
	return nil
}

// Comment is a reader comment on a post.
type Comment struct {
	ID         int64
	PostID     int64
	AuthorID   int64
	AuthorName string
	Content    string
	IsApproved bool
	CreatedAt  time.Time
}
