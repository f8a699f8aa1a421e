package repotest

import (
	"context"
	"sort"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type newsRepo Store

func (r *newsRepo) find(pred func(*entity.NewsArticle) bool) []*entity.NewsArticle {
	out := []*entity.NewsArticle{}
	for _, a := range r.news {
		if pred(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func newsMatches(f repository.NewsFilter) func(*entity.NewsArticle) bool {
	return func(a *entity.NewsArticle) bool {
		return a.IsPublished &&
			contains(f.Search, a.Title, a.Subtitle, a.Summary, a.Content, string(a.Tags)) &&
			sameCategory(f.CategoryID, a.CategoryID) &&
			(f.Priority == "" || a.Priority == f.Priority)
	}
}

func (r *newsRepo) Get(_ context.Context, id int64) (*entity.NewsArticle, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if a, ok := r.news[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *newsRepo) GetBySlug(_ context.Context, slug string) (*entity.NewsArticle, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if found := r.find(func(a *entity.NewsArticle) bool { return a.Slug == slug }); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *newsRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	r.ExistsCalls++
	a, err := r.GetBySlug(ctx, slug)
	return a != nil, err
}

func (r *newsRepo) ListPublished(_ context.Context, f repository.NewsFilter, offset, limit int) ([]*entity.NewsArticle, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(newsMatches(f)), offset, limit), nil
}

func (r *newsRepo) CountPublished(_ context.Context, f repository.NewsFilter) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.find(newsMatches(f)))), nil
}

func (r *newsRepo) ListFeatured(_ context.Context, limit int) ([]*entity.NewsArticle, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(a *entity.NewsArticle) bool { return a.IsPublished && a.IsFeatured }), 0, limit), nil
}

func (r *newsRepo) ListRelated(_ context.Context, categoryID, excludeID int64, limit int) ([]*entity.NewsArticle, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(a *entity.NewsArticle) bool {
		return a.IsPublished && a.ID != excludeID && a.CategoryID != nil && *a.CategoryID == categoryID
	}), 0, limit), nil
}

func (r *newsRepo) ListAll(_ context.Context, offset, limit int) ([]*entity.NewsArticle, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(*entity.NewsArticle) bool { return true }), offset, limit), nil
}

func (r *newsRepo) CountAll(_ context.Context) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.news)), nil
}

// Create stamps PublishedAt with the store clock unless the caller set it.
func (r *newsRepo) Create(_ context.Context, a *entity.NewsArticle) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	for _, o := range r.news {
		if o.Slug == a.Slug {
			return entity.ErrDuplicateSlug
		}
	}
	a.ID = (*Store)(r).id()
	if a.PublishedAt.IsZero() {
		a.PublishedAt = r.now()
	}
	a.UpdatedAt = a.PublishedAt
	cp := *a
	r.news[a.ID] = &cp
	return nil
}

func (r *newsRepo) Update(_ context.Context, a *entity.NewsArticle) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	old, ok := r.news[a.ID]
	if !ok {
		return entity.ErrNotFound
	}
	a.UpdatedAt = r.now()
	cp := *a
	cp.Slug, cp.PublishedAt, cp.Views = old.Slug, old.PublishedAt, old.Views
	r.news[a.ID] = &cp
	return nil
}

func (r *newsRepo) Delete(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.news[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.news, id)
	return nil
}

func (r *newsRepo) IncrementViews(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	a, ok := r.news[id]
	if !ok {
		return entity.ErrNotFound
	}
	a.Views++
	return nil
}
