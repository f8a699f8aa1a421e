// Package slugs wires slug assignment into the write paths of the content
// use cases: every probe is counted, traced and logged per collection.
package slugs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/logging"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/observability/tracing"
	"prompt-library/pkg/slug"
)

// Collection names used as metric labels. Category kinds share one table
// but are probed separately.
const (
	Prompts          = "prompts"
	Posts            = "posts"
	News             = "news_articles"
	PromptCategories = "prompt_categories"
	BlogCategories   = "blog_categories"
	NewsCategories   = "news_categories"
)

// maxLengths mirrors the slug column widths.
var maxLengths = map[string]int{
	Prompts:          220,
	Posts:            220,
	News:             270,
	PromptCategories: 100,
	BlogCategories:   100,
	NewsCategories:   100,
}

// CategoryCollection returns the collection label for a category kind.
func CategoryCollection(kind entity.CategoryKind) string {
	switch kind {
	case entity.CategoryKindBlog:
		return BlogCategories
	case entity.CategoryKindNews:
		return NewsCategories
	default:
		return PromptCategories
	}
}

// Assigner assigns slugs within one collection.
type Assigner struct {
	collection string
	maxLength  int
}

// New returns an Assigner for collection. Slugs are capped at the width of
// the collection's slug column.
func New(collection string) *Assigner {
	return &Assigner{collection: collection, maxLength: maxLengths[collection]}
}

// Collection returns the label the assigner records under.
func (a *Assigner) Collection() string {
	return a.collection
}

// Assign normalizes displayName and probes exists until a free candidate is
// found. The number of exists calls is recorded in slug_probe_attempts.
func (a *Assigner) Assign(ctx context.Context, displayName string, exists slug.ExistsFunc) (s string, err error) {
	ctx, span := tracing.StartSpan(ctx, "slug.Assign",
		attribute.String("slug.collection", a.collection))
	defer func() { tracing.EndSpan(span, err) }()

	attempts := 0
	counted := func(ctx context.Context, candidate string) (bool, error) {
		attempts++
		return exists(ctx, candidate)
	}

	s, err = slug.Assign(ctx, displayName, counted, slug.MaxLength(a.maxLength))
	span.SetAttributes(attribute.Int("slug.attempts", attempts))
	if err != nil {
		return "", err
	}

	metrics.RecordSlugProbe(a.collection, attempts)
	span.SetAttributes(attribute.String("slug.value", s))
	if attempts > 1 {
		logging.FromContext(ctx).Debug("slug collision resolved",
			slog.String("collection", a.collection),
			slog.String("slug", s),
			slog.Int("attempts", attempts))
	}
	return s, nil
}

// Ensure keeps current when set and otherwise assigns from displayName. It is
// the save hook of content records, whose slug never changes once set.
func (a *Assigner) Ensure(ctx context.Context, current, displayName string, exists slug.ExistsFunc) (string, error) {
	if current != "" {
		return current, nil
	}
	return a.Assign(ctx, displayName, exists)
}

// Explicit validates a caller supplied slug. It is kept verbatim, so the
// unique index is the only collision check.
func (a *Assigner) Explicit(s string) error {
	if err := a.CheckLength(s); err != nil {
		return err
	}
	if !slug.Valid(s) {
		return &entity.ValidationError{Field: "slug", Message: "may only contain letters, numbers, hyphens and underscores"}
	}
	return nil
}

// CheckLength rejects a caller supplied slug wider than the slug column.
func (a *Assigner) CheckLength(s string) error {
	if a.maxLength > 0 && len(s) > a.maxLength {
		return &entity.ValidationError{Field: "slug", Message: fmt.Sprintf("must be at most %d characters", a.maxLength)}
	}
	return nil
}

// Conflict records err when it is a lost slug race and returns it unchanged.
func (a *Assigner) Conflict(err error) error {
	if errors.Is(err, entity.ErrDuplicateSlug) {
		metrics.RecordSlugConflict(a.collection)
	}
	return err
}
