package entity

import (
	"fmt"
	"time"
)

// Difficulty of a prompt.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// AIModel is the model a prompt targets.
type AIModel string

const (
	AIModelChatGPT         AIModel = "chatgpt"
	AIModelClaude          AIModel = "claude"
	AIModelGemini          AIModel = "gemini"
	AIModelMidjourney      AIModel = "midjourney"
	AIModelStableDiffusion AIModel = "stable-diffusion"
	AIModelOther           AIModel = "other"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Valid reports whether m is a known model.
func (m AIModel) Valid() bool {
	switch m {
	case AIModelChatGPT, AIModelClaude, AIModelGemini, AIModelMidjourney, AIModelStableDiffusion, AIModelOther:
		return true
	}
	return false
}

// Prompt is a user submitted AI prompt.
type Prompt struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	PromptText  string
	CategoryID  *int64
	Difficulty  Difficulty
	AIModel     AIModel
	Tags        Tags
	AuthorID    int64
	Views       int64
	Upvotes     int64
	IsFeatured  bool
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the user editable fields and fills enum defaults.
func (p *Prompt) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(p.Title) > 200 {
		return &ValidationError{Field: "title", Message: "must be at most 200 characters"}
	}
	if p.Description == "" {
		return &ValidationError{Field: "description", Message: "is required"}
	}
	if p.PromptText == "" {
		return &ValidationError{Field: "prompt_text", Message: "is required"}
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyBeginner
	}
	if !p.Difficulty.Valid() {
		return &ValidationError{Field: "difficulty", Message: fmt.Sprintf("invalid difficulty %q", p.Difficulty)}
	}
	if p.AIModel == "" {
		p.AIModel = AIModelChatGPT
	}
	if !p.AIModel.Valid() {
		return &ValidationError{Field: "ai_model", Message: fmt.Sprintf("invalid ai_model %q", p.AIModel)}
	}
	p.Tags = p.Tags.Normalize()
	if len(p.Tags) > 200 {
		return &ValidationError{Field: "tags", Message: "must be at most 200 characters"}
	}
	return nil
}

// Bookmark links a user to a saved prompt. The pair is unique.
type Bookmark struct {
	ID        int64
	UserID    int64
	PromptID  int64
	CreatedAt time.Time
}
