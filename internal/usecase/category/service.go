package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/logging"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/repository"
	"prompt-library/internal/service/slugs"
)

// CreateInput holds the caller controlled fields of a new category.
// Slug is optional; when set it is normalised and probed like a name.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
}

// UpdateInput changes the non-nil fields. The slug never changes.
type UpdateInput struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
}

// Service manages categories of every kind.
type Service struct {
	Repo repository.CategoryRepository
}

// List returns the categories of kind ordered by name.
func (s *Service) List(ctx context.Context, kind entity.CategoryKind) ([]*entity.Category, error) {
	cats, err := s.Repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetBySlug returns ErrCategoryNotFound when kind has no such slug.
func (s *Service) GetBySlug(ctx context.Context, kind entity.CategoryKind, slug string) (*entity.Category, error) {
	c, err := s.Repo.GetBySlug(ctx, kind, slug)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// Resolve maps an optional category slug filter onto its ID. An empty slug
// yields nil; an unknown slug is ErrCategoryNotFound.
func (s *Service) Resolve(ctx context.Context, kind entity.CategoryKind, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.GetBySlug(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}

// Create validates in, assigns a slug within kind and stores the category.
func (s *Service) Create(ctx context.Context, kind entity.CategoryKind, in CreateInput) (*entity.Category, error) {
	c := &entity.Category{
		Kind:        kind,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.Repo.ExistsByName(ctx, kind, c.Name)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if taken {
		return nil, ErrDuplicateName
	}

	assigner := slugs.New(slugs.CategoryCollection(kind))
	base := c.Name
	if in.Slug != "" {
		if err := assigner.CheckLength(in.Slug); err != nil {
			return nil, err
		}
		base = in.Slug
	}
	c.Slug, err = assigner.Assign(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return s.Repo.ExistsBySlug(ctx, kind, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("assign category slug: %w", err)
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", assigner.Conflict(err))
	}
	metrics.RecordContentCreated(assigner.Collection())
	return c, nil
}

// Update applies in to the category found by slug.
func (s *Service) Update(ctx context.Context, kind entity.CategoryKind, slug string, in UpdateInput) (*entity.Category, error) {
	c, err := s.GetBySlug(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes the category. Content in it is kept uncategorised.
func (s *Service) Delete(ctx context.Context, kind entity.CategoryKind, slug string) error {
	c, err := s.GetBySlug(ctx, kind, slug)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Seed creates the given categories, skipping names that already exist.
// It returns the number of categories created.
func (s *Service) Seed(ctx context.Context, kind entity.CategoryKind, inputs []CreateInput) (int, error) {
	created := 0
	for _, in := range inputs {
		_, err := s.Create(ctx, kind, in)
		switch {
		case errors.Is(err, ErrDuplicateName):
			continue
		case err != nil:
			return created, fmt.Errorf("seed %s category %q: %w", kind, in.Name, err)
		}
		created++
	}
	if created > 0 {
		logging.FromContext(ctx).Info("categories seeded",
			slog.String("kind", string(kind)),
			slog.Int("created", created))
	}
	return created, nil
}
