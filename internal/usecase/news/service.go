package news

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
type ListFilter struct {
	Search   string
	Category string
	Priority entity.Priority
}

// CreateInput holds a new article. IsPublished defaults to true.
type CreateInput struct {
	Title         string
	Slug          string
	Subtitle      string
	Summary       string
	Content       string
	FeaturedImage string
	Source        string
	Category      string
	Priority      entity.Priority
	Tags          []string
	IsPublished   *bool
	IsFeatured    bool
}

// UpdateInput changes the non-nil fields.
type UpdateInput struct {
	Title         *string
	Subtitle      *string
	Summary       *string
	Content       *string
	FeaturedImage *string
	Source        *string
	Category      *string
	Priority      *entity.Priority
	Tags          []string
	IsPublished   *bool
	IsFeatured    *bool
}

// Detail is a published article with the side listings of its page.
type Detail struct {
	Article  *entity.NewsArticle
	Category *entity.Category
	Related  []*entity.NewsArticle
	Latest   []*entity.NewsArticle
}

// CategoryPage is one page of a category's articles.
type CategoryPage struct {
	Category *entity.Category
	*pagination.Page[*entity.NewsArticle]
}

// Service provides the news use cases.
type Service struct {
	Articles   repository.NewsRepository
	Categories repository.CategoryRepository
}

func (s *Service) category(ctx context.Context, slug string) (*entity.Category, error) {
	c, err := s.Categories.GetBySlug(ctx, entity.CategoryKindNews, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *Service) categoryID(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.category(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}

func (s *Service) page(ctx context.Context, rf repository.NewsFilter, params pagination.Params) (*pagination.Page[*entity.NewsArticle], error) {
	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Articles.CountPublished(ctx, rf)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	items, err := s.Articles.ListPublished(ctx, rf, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}

// List returns one page of published articles, newest first.
func (s *Service) List(ctx context.Context, f ListFilter, params pagination.Params) (*pagination.Page[*entity.NewsArticle], error) {
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, &entity.ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority %q", f.Priority)}
	}
	catID, err := s.categoryID(ctx, f.Category)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return pagination.NewPage([]*entity.NewsArticle{}, params, 0), nil
	case err != nil:
		return nil, err
	}
	return s.page(ctx, repository.NewsFilter{
		Search:     strings.TrimSpace(f.Search),
		CategoryID: catID,
		Priority:   f.Priority,
	}, params)
}

// ListByCategory returns one page of the category's published articles.
func (s *Service) ListByCategory(ctx context.Context, categorySlug string, params pagination.Params) (*CategoryPage, error) {
	c, err := s.category(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, repository.NewsFilter{CategoryID: &c.ID}, params)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Category: c, Page: page}, nil
}

// Breaking returns the newest published breaking-priority articles.
func (s *Service) Breaking(ctx context.Context) ([]*entity.NewsArticle, error) {
	items, err := s.Articles.ListPublished(ctx, repository.NewsFilter{Priority: entity.PriorityBreaking}, 0, BreakingLimit)
	if err != nil {
		return nil, fmt.Errorf("list breaking news: %w", err)
	}
	return items, nil
}

func (s *Service) Featured(ctx context.Context) ([]*entity.NewsArticle, error) {
	items, err := s.Articles.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured news: %w", err)
	}
	return items, nil
}

func (s *Service) Latest(ctx context.Context) ([]*entity.NewsArticle, error) {
	items, err := s.Articles.ListPublished(ctx, repository.NewsFilter{}, 0, LatestLimit)
	if err != nil {
		return nil, fmt.Errorf("list latest news: %w", err)
	}
	return items, nil
}

// GetBySlug returns a published article and counts the view.
func (s *Service) GetBySlug(ctx context.Context, slug string) (d *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, "news.GetBySlug", attribute.String("article.slug", slug))
	defer func() { tracing.EndSpan(span, err) }()

	a, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a == nil || !a.IsPublished {
		return nil, ErrArticleNotFound
	}
	if err := s.Articles.IncrementViews(ctx, a.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	a.Views++

	d = &Detail{Article: a, Related: []*entity.NewsArticle{}}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		latest, err := s.Latest(gctx)
		d.Latest = latest
		return err
	})
	if a.CategoryID != nil {
		g.Go(func() error {
			c, err := s.Categories.Get(gctx, *a.CategoryID)
			if err != nil {
				return fmt.Errorf("get category: %w", err)
			}
			d.Category = c
			return nil
		})
		g.Go(func() error {
			related, err := s.Articles.ListRelated(gctx, *a.CategoryID, a.ID, RelatedLimit)
			if err != nil {
				return fmt.Errorf("list related news: %w", err)
			}
			d.Related = related
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

/* ──────────────────────────────── staff ──────────────────────────────── */

func staffOnly(actor *entity.User) error {
	if actor == nil || !actor.IsStaff {
		return ErrStaffOnly
	}
	return nil
}

// ListAll returns one page of every article, unpublished included.
func (s *Service) ListAll(ctx context.Context, actor *entity.User, params pagination.Params) (*pagination.Page[*entity.NewsArticle], error) {
	if err := staffOnly(actor); err != nil {
		return nil, err
	}
	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Articles.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	items, err := s.Articles.ListAll(ctx, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}

// Create stores a new article.
func (s *Service) Create(ctx context.Context, actor *entity.User, in CreateInput) (*entity.NewsArticle, error) {
	if err := staffOnly(actor); err != nil {
		return nil, err
	}
	a := &entity.NewsArticle{
		Title:         strings.TrimSpace(in.Title),
		Subtitle:      in.Subtitle,
		Summary:       in.Summary,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		Source:        in.Source,
		Priority:      in.Priority,
		Tags:          entity.JoinTags(in.Tags),
		IsPublished:   true,
		IsFeatured:    in.IsFeatured,
	}
	if in.IsPublished != nil {
		a.IsPublished = *in.IsPublished
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	catID, err := s.categoryID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	a.CategoryID = catID

	as := slugs.New(slugs.News)
	if in.Slug != "" {
		if err := as.Explicit(in.Slug); err != nil {
			return nil, err
		}
		a.Slug = in.Slug
	}
	if a.Slug, err = as.Ensure(ctx, a.Slug, a.Title, s.Articles.ExistsBySlug); err != nil {
		return nil, fmt.Errorf("assign article slug: %w", err)
	}

	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", as.Conflict(err))
	}
	metrics.RecordContentCreated("news")
	return a, nil
}

func (s *Service) get(ctx context.Context, slug string) (*entity.NewsArticle, error) {
	a, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

// Update applies in to the article. The slug never changes.
func (s *Service) Update(ctx context.Context, actor *entity.User, slug string, in UpdateInput) (*entity.NewsArticle, error) {
	if err := staffOnly(actor); err != nil {
		return nil, err
	}
	a, err := s.get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Subtitle != nil {
		a.Subtitle = *in.Subtitle
	}
	if in.Summary != nil {
		a.Summary = *in.Summary
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.FeaturedImage != nil {
		a.FeaturedImage = *in.FeaturedImage
	}
	if in.Source != nil {
		a.Source = *in.Source
	}
	if in.Priority != nil {
		a.Priority = *in.Priority
	}
	if in.Tags != nil {
		a.Tags = entity.JoinTags(in.Tags)
	}
	if in.IsPublished != nil {
		a.IsPublished = *in.IsPublished
	}
	if in.IsFeatured != nil {
		a.IsFeatured = *in.IsFeatured
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if in.Category != nil {
		if a.CategoryID, err = s.categoryID(ctx, *in.Category); err != nil {
			return nil, err
		}
	}

	if err := s.Articles.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, actor *entity.User, slug string) error {
	if err := staffOnly(actor); err != nil {
		return err
	}
	a, err := s.get(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Articles.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
