package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/observability/tracing"
	"prompt-library/internal/repository"
	"prompt-library/internal/service/slugs"
)

// ListFilter holds the query string filters of the public listing.
// Category is a category slug.
type ListFilter struct {
	Search     string
	Category   string
	Difficulty entity.Difficulty
	AIModel    entity.AIModel
	Sort       repository.PromptSort
}

// CreateInput holds a new prompt. Slug, IsFeatured and IsPublished are
// honoured for staff only.
type CreateInput struct {
	Title       string
	Slug        string
	Description string
	PromptText  string
	Category    string
	Difficulty  entity.Difficulty
	AIModel     entity.AIModel
	Tags        []string
	IsFeatured  *bool
	IsPublished *bool
}

// UpdateInput changes the non-nil fields. An empty Category clears it.
type UpdateInput struct {
	Title       *string
	Description *string
	PromptText  *string
	Category    *string
	Difficulty  *entity.Difficulty
	AIModel     *entity.AIModel
	Tags        []string
	IsFeatured  *bool
	IsPublished *bool
}

// Detail is a prompt as shown on its own page.
type Detail struct {
	Prompt       *entity.Prompt
	Category     *entity.Category
	Related      []*entity.Prompt
	IsBookmarked bool
}

// Service provides the prompt use cases.
type Service struct {
	Prompts    repository.PromptRepository
	Bookmarks  repository.BookmarkRepository
	Categories repository.CategoryRepository
}

func (s *Service) assigner() *slugs.Assigner { return slugs.New(slugs.Prompts) }

func (s *Service) categoryID(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.Categories.GetBySlug(ctx, entity.CategoryKindPrompt, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return &c.ID, nil
}

// List returns one page of published prompts.
func (s *Service) List(ctx context.Context, f ListFilter, params pagination.Params) (*pagination.Page[*entity.Prompt], error) {
	if f.Sort == "" || !f.Sort.Valid() {
		f.Sort = repository.PromptSortNewest
	}
	catID, err := s.categoryID(ctx, f.Category)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return pagination.NewPage([]*entity.Prompt{}, params, 0), nil
	case err != nil:
		return nil, err
	}
	rf := repository.PromptFilter{
		Search:     strings.TrimSpace(f.Search),
		CategoryID: catID,
		Difficulty: f.Difficulty,
		AIModel:    f.AIModel,
		Sort:       f.Sort,
	}

	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Prompts.CountPublished(ctx, rf)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}
	items, err := s.Prompts.ListPublished(ctx, rf, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}

// Featured returns the featured published prompts shown on the home page.
func (s *Service) Featured(ctx context.Context) ([]*entity.Prompt, error) {
	items, err := s.Prompts.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured prompts: %w", err)
	}
	return items, nil
}

// GetBySlug returns a published prompt and counts the view. viewer may be nil.
func (s *Service) GetBySlug(ctx context.Context, slug string, viewer *entity.User) (d *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, "prompt.GetBySlug", attribute.String("prompt.slug", slug))
	defer func() { tracing.EndSpan(span, err) }()

	p, err := s.Prompts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	if p == nil || !p.IsPublished {
		return nil, ErrPromptNotFound
	}
	if err := s.Prompts.IncrementViews(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	p.Views++

	d = &Detail{Prompt: p, Related: []*entity.Prompt{}}
	g, gctx := errgroup.WithContext(ctx)
	if p.CategoryID != nil {
		g.Go(func() error {
			c, err := s.Categories.Get(gctx, *p.CategoryID)
			if err != nil {
				return fmt.Errorf("get category: %w", err)
			}
			d.Category = c
			return nil
		})
		g.Go(func() error {
			related, err := s.Prompts.ListRelated(gctx, *p.CategoryID, p.ID, RelatedLimit)
			if err != nil {
				return fmt.Errorf("list related prompts: %w", err)
			}
			d.Related = related
			return nil
		})
	}
	if viewer != nil {
		g.Go(func() error {
			ok, err := s.Bookmarks.Exists(gctx, viewer.ID, p.ID)
			if err != nil {
				return fmt.Errorf("check bookmark: %w", err)
			}
			d.IsBookmarked = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// Create validates in and stores a prompt authored by author.
func (s *Service) Create(ctx context.Context, author *entity.User, in CreateInput) (*entity.Prompt, error) {
	p := &entity.Prompt{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		PromptText:  in.PromptText,
		Difficulty:  in.Difficulty,
		AIModel:     in.AIModel,
		Tags:        entity.JoinTags(in.Tags),
		AuthorID:    author.ID,
		IsPublished: true,
	}
	if author.IsStaff {
		if in.IsFeatured != nil {
			p.IsFeatured = *in.IsFeatured
		}
		if in.IsPublished != nil {
			p.IsPublished = *in.IsPublished
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	catID, err := s.categoryID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	p.CategoryID = catID

	a := s.assigner()
	if author.IsStaff && in.Slug != "" {
		if err := a.Explicit(in.Slug); err != nil {
			return nil, err
		}
		p.Slug = in.Slug
	}
	if p.Slug, err = a.Ensure(ctx, p.Slug, p.Title, s.Prompts.ExistsBySlug); err != nil {
		return nil, fmt.Errorf("assign prompt slug: %w", err)
	}

	if err := s.Prompts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create prompt: %w", a.Conflict(err))
	}
	metrics.RecordContentCreated("prompt")
	return p, nil
}

// editable loads the prompt for an update or delete by actor. Unpublished
// prompts are visible to their author and staff only.
func (s *Service) editable(ctx context.Context, actor *entity.User, slug string) (*entity.Prompt, error) {
	p, err := s.Prompts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	if p == nil {
		return nil, ErrPromptNotFound
	}
	if !actor.CanEdit(p.AuthorID) {
		if !p.IsPublished {
			return nil, ErrPromptNotFound
		}
		return nil, entity.ErrForbidden
	}
	return p, nil
}

// Update applies in to the prompt. The slug never changes.
func (s *Service) Update(ctx context.Context, actor *entity.User, slug string, in UpdateInput) (*entity.Prompt, error) {
	p, err := s.editable(ctx, actor, slug)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.PromptText != nil {
		p.PromptText = *in.PromptText
	}
	if in.Difficulty != nil {
		p.Difficulty = *in.Difficulty
	}
	if in.AIModel != nil {
		p.AIModel = *in.AIModel
	}
	if in.Tags != nil {
		p.Tags = entity.JoinTags(in.Tags)
	}
	if actor.IsStaff {
		if in.IsFeatured != nil {
			p.IsFeatured = *in.IsFeatured
		}
		if in.IsPublished != nil {
			p.IsPublished = *in.IsPublished
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if in.Category != nil {
		if p.CategoryID, err = s.categoryID(ctx, *in.Category); err != nil {
			return nil, err
		}
	}

	if err := s.Prompts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	return p, nil
}

// Delete removes the prompt and its bookmarks.
func (s *Service) Delete(ctx context.Context, actor *entity.User, slug string) error {
	p, err := s.editable(ctx, actor, slug)
	if err != nil {
		return err
	}
	if err := s.Prompts.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// ListByAuthor returns the author's prompts, unpublished included.
func (s *Service) ListByAuthor(ctx context.Context, author *entity.User, params pagination.Params) (*pagination.Page[*entity.Prompt], error) {
	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Prompts.CountByAuthor(ctx, author.ID, false)
	if err != nil {
		return nil, fmt.Errorf("count author prompts: %w", err)
	}
	items, err := s.Prompts.ListByAuthor(ctx, author.ID, false, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list author prompts: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}

// ToggleBookmark adds or removes the user's bookmark on a published prompt
// and returns whether it is bookmarked afterwards.
func (s *Service) ToggleBookmark(ctx context.Context, user *entity.User, slug string) (bool, error) {
	p, err := s.Prompts.GetBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("get prompt: %w", err)
	}
	if p == nil || !p.IsPublished {
		return false, ErrPromptNotFound
	}

	exists, err := s.Bookmarks.Exists(ctx, user.ID, p.ID)
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	if exists {
		err = s.Bookmarks.Remove(ctx, user.ID, p.ID)
	} else {
		err = s.Bookmarks.Add(ctx, user.ID, p.ID)
	}
	if err != nil {
		return false, fmt.Errorf("toggle bookmark: %w", err)
	}
	metrics.RecordBookmarkToggle(!exists)
	return !exists, nil
}

// ListBookmarks returns the user's bookmarked prompts, newest bookmark first.
func (s *Service) ListBookmarks(ctx context.Context, user *entity.User, params pagination.Params) (*pagination.Page[*entity.Prompt], error) {
	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Bookmarks.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}
	items, err := s.Bookmarks.ListPrompts(ctx, user.ID, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}
