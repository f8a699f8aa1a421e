package repotest

import (
	"context"
	"sort"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type postRepo Store

// find returns copies ordered by published_at DESC, drafts last.
func (r *postRepo) find(pred func(*entity.Post) bool) []*entity.Post {
	out := []*entity.Post{}
	for _, p := range r.posts {
		if pred(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		switch {
		case a == nil && b == nil:
			return out[i].ID > out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func postMatches(f repository.PostFilter) func(*entity.Post) bool {
	return func(p *entity.Post) bool {
		return p.IsPublished() &&
			contains(f.Search, p.Title, p.Excerpt, p.Content, string(p.Tags)) &&
			sameCategory(f.CategoryID, p.CategoryID)
	}
}

func (r *postRepo) Get(_ context.Context, id int64) (*entity.Post, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *postRepo) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if found := r.find(func(p *entity.Post) bool { return p.Slug == slug }); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *postRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	r.ExistsCalls++
	p, err := r.GetBySlug(ctx, slug)
	return p != nil, err
}

func (r *postRepo) ListPublished(_ context.Context, f repository.PostFilter, offset, limit int) ([]*entity.Post, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(postMatches(f)), offset, limit), nil
}

func (r *postRepo) CountPublished(_ context.Context, f repository.PostFilter) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.find(postMatches(f)))), nil
}

func (r *postRepo) ListFeatured(_ context.Context, limit int) ([]*entity.Post, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(p *entity.Post) bool { return p.IsPublished() && p.IsFeatured }), 0, limit), nil
}

func (r *postRepo) ListRelated(_ context.Context, categoryID, excludeID int64, limit int) ([]*entity.Post, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(p *entity.Post) bool {
		return p.IsPublished() && p.ID != excludeID && p.CategoryID != nil && *p.CategoryID == categoryID
	}), 0, limit), nil
}

func (r *postRepo) ListByAuthor(_ context.Context, authorID int64, offset, limit int) ([]*entity.Post, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := r.find(func(p *entity.Post) bool { return p.AuthorID == authorID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, offset, limit), nil
}

func (r *postRepo) CountByAuthor(_ context.Context, authorID int64) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.find(func(p *entity.Post) bool { return p.AuthorID == authorID }))), nil
}

func (r *postRepo) Create(_ context.Context, p *entity.Post) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	for _, o := range r.posts {
		if o.Slug == p.Slug {
			return entity.ErrDuplicateSlug
		}
	}
	p.ID = (*Store)(r).id()
	p.CreatedAt = r.now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *postRepo) Update(_ context.Context, p *entity.Post) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	old, ok := r.posts[p.ID]
	if !ok {
		return entity.ErrNotFound
	}
	p.UpdatedAt = r.now()
	cp := *p
	cp.Slug, cp.CreatedAt, cp.Views = old.Slug, old.CreatedAt, old.Views
	r.posts[p.ID] = &cp
	return nil
}

func (r *postRepo) Delete(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.posts[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.posts, id)
	for cid, c := range r.comments {
		if c.PostID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *postRepo) IncrementViews(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	p, ok := r.posts[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.Views++
	return nil
}

/* ──────────────────────────────── comments ──────────────────────────────── */

type commentRepo Store

func (r *commentRepo) withAuthor(c *entity.Comment) *entity.Comment {
	cp := *c
	if u, ok := r.users[c.AuthorID]; ok {
		cp.AuthorName = u.Username
	}
	return &cp
}

func (r *commentRepo) Get(_ context.Context, id int64) (*entity.Comment, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if c, ok := r.comments[id]; ok {
		return r.withAuthor(c), nil
	}
	return nil, nil
}

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	c.ID = (*Store)(r).id()
	c.CreatedAt = r.now()
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *commentRepo) ListApproved(_ context.Context, postID int64) ([]*entity.Comment, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []*entity.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID && c.IsApproved {
			out = append(out, r.withAuthor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *commentRepo) SetApproved(_ context.Context, id int64, approved bool) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	c, ok := r.comments[id]
	if !ok {
		return entity.ErrNotFound
	}
	c.IsApproved = approved
	return nil
}
