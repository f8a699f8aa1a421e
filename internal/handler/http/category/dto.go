// Package category provides the HTTP handlers for the blog, news and prompt
// category collections: public reads and the staff CRUD under /admin.
package category

import (
	"time"

	"prompt-library/internal/domain/entity"
)

// DTO represents the JSON structure for category data transfer.
// It is embedded in the content responses of the other handlers.
type DTO struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDTO converts c; a nil category stays nil.
func ToDTO(c *entity.Category) *DTO {
	if c == nil {
		return nil
	}
	return &DTO{
		ID:          c.ID,
		Kind:        string(c.Kind),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
	}
}

type createRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}
