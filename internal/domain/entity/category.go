// Package entity defines the core domain entities and validation logic for the application.
// It contains the content types (prompts, blog posts, news articles), their categories,
// users and profiles, along with their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// CategoryKind separates the three category collections. Slugs and names are
// unique per kind.
type CategoryKind string

const (
	CategoryKindBlog   CategoryKind = "blog"
	CategoryKindNews   CategoryKind = "news"
	CategoryKindPrompt CategoryKind = "prompt"
)

// DefaultNewsColor is the display colour given to news categories without one.
const DefaultNewsColor = "primary"

// ParseCategoryKind converts a path segment into a CategoryKind.
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch k := CategoryKind(s); k {
	case CategoryKindBlog, CategoryKindNews, CategoryKindPrompt:
		return k, nil
	}
	return "", &ValidationError{Field: "kind", Message: fmt.Sprintf("invalid category kind %q", s)}
}

// Category is shared by blog, news and prompt categories.
// Color is only meaningful for news, Icon only for prompts.
type Category struct {
	ID          int64
	Kind        CategoryKind
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	CreatedAt   time.Time
}

// Validate checks the fields a caller controls.
func (c *Category) Validate() error {
	if _, err := ParseCategoryKind(string(c.Kind)); err != nil {
		return err
	}
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(c.Name) > 100 {
		return &ValidationError{Field: "name", Message: "must be at most 100 characters"}
	}
	if len(c.Icon) > 50 {
		return &ValidationError{Field: "icon", Message: "must be at most 50 characters"}
	}
	if len(c.Color) > 20 {
		return &ValidationError{Field: "color", Message: "must be at most 20 characters"}
	}
	if c.Kind == CategoryKindNews && c.Color == "" {
		c.Color = DefaultNewsColor
	}
	return nil
}
