package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/observability/tracing"
	"prompt-library/internal/repository"
	"prompt-library/internal/service/slugs"
	"prompt-library/pkg/markup"
)

// ListFilter holds the query string filters of the public listing.
type ListFilter struct {
	Search   string
	Category string
}

// CreateInput holds a new post. PublishNow publishes it immediately.
// Slug and IsFeatured are honoured for staff only.
type CreateInput struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Category      string
	Tags          []string
	PublishNow    bool
	IsFeatured    *bool
}

// UpdateInput changes the non-nil fields. PublishNow lets the author publish
// a draft; Status and IsFeatured are staff only.
type UpdateInput struct {
	Title         *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	Category      *string
	Tags          []string
	PublishNow    bool
	Status        *entity.PostStatus
	IsFeatured    *bool
}

// Detail is a published post with everything its page shows.
type Detail struct {
	Post          *entity.Post
	ContentHTML   string
	Category      *entity.Category
	Comments      []*entity.Comment
	CommentsCount int
	Related       []*entity.Post
}

// Service provides the blog use cases.
type Service struct {
	Posts      repository.PostRepository
	Comments   repository.CommentRepository
	Categories repository.CategoryRepository

	// Now stamps published_at; time.Now when nil.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) categoryID(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.Categories.GetBySlug(ctx, entity.CategoryKindBlog, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return &c.ID, nil
}

// List returns one page of published posts, newest publication first.
func (s *Service) List(ctx context.Context, f ListFilter, params pagination.Params) (*pagination.Page[*entity.Post], error) {
	catID, err := s.categoryID(ctx, f.Category)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return pagination.NewPage([]*entity.Post{}, params, 0), nil
	case err != nil:
		return nil, err
	}
	rf := repository.PostFilter{Search: strings.TrimSpace(f.Search), CategoryID: catID}

	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Posts.CountPublished(ctx, rf)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	items, err := s.Posts.ListPublished(ctx, rf, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}

func (s *Service) Featured(ctx context.Context) ([]*entity.Post, error) {
	items, err := s.Posts.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured posts: %w", err)
	}
	return items, nil
}

// GetBySlug returns a published post, counts the view and renders the body.
func (s *Service) GetBySlug(ctx context.Context, slug string) (d *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, "blog.GetBySlug", attribute.String("post.slug", slug))
	defer func() { tracing.EndSpan(span, err) }()

	p, err := s.published(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.Posts.IncrementViews(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	p.Views++

	d = &Detail{Post: p, Related: []*entity.Post{}}
	if d.ContentHTML, err = markup.Render(p.Content); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := s.Comments.ListApproved(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("list comments: %w", err)
		}
		d.Comments, d.CommentsCount = comments, len(comments)
		return nil
	})
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
			related, err := s.Posts.ListRelated(gctx, *p.CategoryID, p.ID, RelatedLimit)
			if err != nil {
				return fmt.Errorf("list related posts: %w", err)
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

func (s *Service) published(ctx context.Context, slug string) (*entity.Post, error) {
	p, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if p == nil || !p.IsPublished() {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Create stores a post authored by author.
func (s *Service) Create(ctx context.Context, author *entity.User, in CreateInput) (*entity.Post, error) {
	p := &entity.Post{
		Title:         strings.TrimSpace(in.Title),
		AuthorID:      author.ID,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		Tags:          entity.JoinTags(in.Tags),
		Status:        entity.PostStatusDraft,
	}
	if in.PublishNow {
		p.Publish(s.now())
	}
	if author.IsStaff && in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	catID, err := s.categoryID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	p.CategoryID = catID

	a := slugs.New(slugs.Posts)
	if author.IsStaff && in.Slug != "" {
		if err := a.Explicit(in.Slug); err != nil {
			return nil, err
		}
		p.Slug = in.Slug
	}
	if p.Slug, err = a.Ensure(ctx, p.Slug, p.Title, s.Posts.ExistsBySlug); err != nil {
		return nil, fmt.Errorf("assign post slug: %w", err)
	}

	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", a.Conflict(err))
	}
	metrics.RecordContentCreated("post")
	return p, nil
}

func (s *Service) editable(ctx context.Context, actor *entity.User, slug string) (*entity.Post, error) {
	p, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	if !actor.CanEdit(p.AuthorID) {
		if !p.IsPublished() {
			return nil, ErrPostNotFound
		}
		return nil, entity.ErrForbidden
	}
	return p, nil
}

// Update applies in to the post. The slug never changes and PublishedAt is
// stamped only the first time the post is published.
func (s *Service) Update(ctx context.Context, actor *entity.User, slug string, in UpdateInput) (*entity.Post, error) {
	p, err := s.editable(ctx, actor, slug)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = *in.FeaturedImage
	}
	if in.Tags != nil {
		p.Tags = entity.JoinTags(in.Tags)
	}
	if actor.IsStaff {
		if in.Status != nil {
			p.Status = *in.Status
		}
		if in.IsFeatured != nil {
			p.IsFeatured = *in.IsFeatured
		}
	}
	if in.PublishNow || p.Status == entity.PostStatusPublished {
		p.Publish(s.now())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if in.Category != nil {
		if p.CategoryID, err = s.categoryID(ctx, *in.Category); err != nil {
			return nil, err
		}
	}

	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// Delete removes the post and its comments.
func (s *Service) Delete(ctx context.Context, actor *entity.User, slug string) error {
	p, err := s.editable(ctx, actor, slug)
	if err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ListByAuthor returns the author's posts, drafts included, newest first.
func (s *Service) ListByAuthor(ctx context.Context, author *entity.User, params pagination.Params) (*pagination.Page[*entity.Post], error) {
	q := pagination.OffsetStrategy{}.CalculateQuery(params)
	total, err := s.Posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}
	items, err := s.Posts.ListByAuthor(ctx, author.ID, q.Offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list author posts: %w", err)
	}
	return pagination.NewPage(items, params, total), nil
}
