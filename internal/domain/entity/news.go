package entity

import (
	"fmt"
	"time"
)

// Priority orders news articles; breaking news is surfaced separately.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityBreaking Priority = "breaking"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityBreaking:
		return true
	}
	return false
}

// NewsArticle is an editorial news item. News has no member authors; staff
// publish it.
type NewsArticle struct {
	ID            int64
	Title         string
	Slug          string
	Subtitle      string
	Summary       string
	Content       string
	FeaturedImage string
	Source        string
	CategoryID    *int64
	Priority      Priority
	Tags          Tags
	Views         int64
	IsPublished   bool
	IsFeatured    bool
	PublishedAt   time.Time
	UpdatedAt     time.Time
}

// Validate checks the editable fields and fills the default priority.
func (a *NewsArticle) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(a.Title) > 250 {
		return &ValidationError{Field: "title", Message: "must be at most 250 characters"}
	}
	if len(a.Subtitle) > 200 {
		return &ValidationError{Field: "subtitle", Message: "must be at most 200 characters"}
	}
	if a.Summary == "" {
		return &ValidationError{Field: "summary", Message: "is required"}
	}
	if len([]rune(a.Summary)) > 300 {
		return &ValidationError{Field: "summary", Message: "must be at most 300 characters"}
	}
	if a.Content == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if len(a.Source) > 200 {
		return &ValidationError{Field: "source", Message: "must be at most 200 characters"}
	}
	if a.Priority == "" {
		a.Priority = PriorityNormal
	}
	if !a.Priority.Valid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority %q", a.Priority)}
	}
	if a.FeaturedImage != "" {
		if err := ValidateURL(a.FeaturedImage); err != nil {
			return &ValidationError{Field: "featured_image", Message: "must be a valid http(s) URL"}
		}
	}
	a.Tags = a.Tags.Normalize()
	if len(a.Tags) > 200 {
		return &ValidationError{Field: "tags", Message: "must be at most 200 characters"}
	}
	return nil
}
