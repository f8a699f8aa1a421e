// Package news provides the HTTP handlers for news articles: public reads
// and the staff editing routes under /admin/news.
package news

import (
	"time"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/category"
	newsUC "prompt-library/internal/usecase/news"
)

// DTO represents the JSON structure for news article data transfer.
type DTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Subtitle      string    `json:"subtitle,omitempty"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Source        string    `json:"source,omitempty"`
	CategoryID    *int64    `json:"category_id"`
	Priority      string    `json:"priority"`
	Tags          []string  `json:"tags"`
	Views         int64     `json:"views"`
	IsPublished   bool      `json:"is_published"`
	IsFeatured    bool      `json:"is_featured"`
	PublishedAt   time.Time `json:"published_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DetailDTO is the article page.
type DetailDTO struct {
	Article  DTO           `json:"article"`
	Category *category.DTO `json:"category"`
	Related  []DTO         `json:"related"`
	Latest   []DTO         `json:"latest"`
}

// CategoryPageDTO is one page of a news category.
type CategoryPageDTO struct {
	Category *category.DTO `json:"category"`
	pagination.Response[DTO]
}

// ToDTO converts a.
func ToDTO(a *entity.NewsArticle) DTO {
	return DTO{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Subtitle:      a.Subtitle,
		Summary:       a.Summary,
		Content:       a.Content,
		FeaturedImage: a.FeaturedImage,
		Source:        a.Source,
		CategoryID:    a.CategoryID,
		Priority:      string(a.Priority),
		Tags:          a.Tags.Split(),
		Views:         a.Views,
		IsPublished:   a.IsPublished,
		IsFeatured:    a.IsFeatured,
		PublishedAt:   a.PublishedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToDTOs converts as, never returning nil.
func ToDTOs(as []*entity.NewsArticle) []DTO {
	out := make([]DTO, 0, len(as))
	for _, a := range as {
		out = append(out, ToDTO(a))
	}
	return out
}

func toDetailDTO(d *newsUC.Detail) DetailDTO {
	return DetailDTO{
		Article:  ToDTO(d.Article),
		Category: category.ToDTO(d.Category),
		Related:  ToDTOs(d.Related),
		Latest:   ToDTOs(d.Latest),
	}
}

type createRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Subtitle      string   `json:"subtitle"`
	Summary       string   `json:"summary"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featured_image"`
	Source        string   `json:"source"`
	Category      string   `json:"category"`
	Priority      string   `json:"priority"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"is_published"`
	IsFeatured    bool     `json:"is_featured"`
}

type updateRequest struct {
	Title         *string  `json:"title"`
	Subtitle      *string  `json:"subtitle"`
	Summary       *string  `json:"summary"`
	Content       *string  `json:"content"`
	FeaturedImage *string  `json:"featured_image"`
	Source        *string  `json:"source"`
	Category      *string  `json:"category"`
	Priority      *string  `json:"priority"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"is_published"`
	IsFeatured    *bool    `json:"is_featured"`
}

func (req updateRequest) input() newsUC.UpdateInput {
	in := newsUC.UpdateInput{
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		Summary:       req.Summary,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Source:        req.Source,
		Category:      req.Category,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured,
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		in.Priority = &p
	}
	return in
}
