// Package prompt provides the HTTP handlers for the prompt library: public
// listing and detail pages, member authoring and bookmarks.
package prompt

import (
	"time"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/category"
	promptUC "prompt-library/internal/usecase/prompt"
)

// DTO represents the JSON structure for prompt data transfer.
type DTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PromptText  string    `json:"prompt_text"`
	CategoryID  *int64    `json:"category_id"`
	Difficulty  string    `json:"difficulty"`
	AIModel     string    `json:"ai_model"`
	Tags        []string  `json:"tags"`
	AuthorID    int64     `json:"author_id"`
	Views       int64     `json:"views"`
	Upvotes     int64     `json:"upvotes"`
	IsFeatured  bool      `json:"is_featured"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DetailDTO is the prompt page: the prompt, its category, related prompts
// and whether the caller bookmarked it.
type DetailDTO struct {
	Prompt       DTO           `json:"prompt"`
	Category     *category.DTO `json:"category"`
	Related      []DTO         `json:"related"`
	IsBookmarked bool          `json:"is_bookmarked"`
}

// ToDTO converts p.
func ToDTO(p *entity.Prompt) DTO {
	return DTO{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		PromptText:  p.PromptText,
		CategoryID:  p.CategoryID,
		Difficulty:  string(p.Difficulty),
		AIModel:     string(p.AIModel),
		Tags:        p.Tags.Split(),
		AuthorID:    p.AuthorID,
		Views:       p.Views,
		Upvotes:     p.Upvotes,
		IsFeatured:  p.IsFeatured,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToDTOs converts ps, never returning nil.
func ToDTOs(ps []*entity.Prompt) []DTO {
	out := make([]DTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToDTO(p))
	}
	return out
}

func toDetailDTO(d *promptUC.Detail) DetailDTO {
	return DetailDTO{
		Prompt:       ToDTO(d.Prompt),
		Category:     category.ToDTO(d.Category),
		Related:      ToDTOs(d.Related),
		IsBookmarked: d.IsBookmarked,
	}
}

// createRequest is the body of POST /prompts. slug, is_featured and
// is_published are only honoured for staff.
type createRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	PromptText  string   `json:"prompt_text"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	AIModel     string   `json:"ai_model"`
	Tags        []string `json:"tags"`
	IsFeatured  *bool    `json:"is_featured"`
	IsPublished *bool    `json:"is_published"`
}

type updateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	PromptText  *string  `json:"prompt_text"`
	Category    *string  `json:"category"`
	Difficulty  *string  `json:"difficulty"`
	AIModel     *string  `json:"ai_model"`
	Tags        []string `json:"tags"`
	IsFeatured  *bool    `json:"is_featured"`
	IsPublished *bool    `json:"is_published"`
}

func (req updateRequest) input() promptUC.UpdateInput {
	in := promptUC.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		PromptText:  req.PromptText,
		Category:    req.Category,
		Tags:        req.Tags,
		IsFeatured:  req.IsFeatured,
		IsPublished: req.IsPublished,
	}
	if req.Difficulty != nil {
		d := entity.Difficulty(*req.Difficulty)
		in.Difficulty = &d
	}
	if req.AIModel != nil {
		m := entity.AIModel(*req.AIModel)
		in.AIModel = &m
	}
	return in
}

type bookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}
