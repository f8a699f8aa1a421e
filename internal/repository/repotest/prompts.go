package repotest

import (
	"context"
	"sort"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

type promptRepo Store

func (r *promptRepo) find(pred func(*entity.Prompt) bool) []*entity.Prompt {
	out := []*entity.Prompt{}
	for _, p := range r.prompts {
		if pred(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func promptMatches(f repository.PromptFilter) func(*entity.Prompt) bool {
	return func(p *entity.Prompt) bool {
		return p.IsPublished &&
			contains(f.Search, p.Title, p.Description, string(p.Tags)) &&
			sameCategory(f.CategoryID, p.CategoryID) &&
			(f.Difficulty == "" || p.Difficulty == f.Difficulty) &&
			(f.AIModel == "" || p.AIModel == f.AIModel)
	}
}

func (r *promptRepo) Get(_ context.Context, id int64) (*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if p, ok := r.prompts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *promptRepo) GetBySlug(_ context.Context, slug string) (*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if found := r.find(func(p *entity.Prompt) bool { return p.Slug == slug }); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *promptRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	r.ExistsCalls++
	p, err := r.GetBySlug(ctx, slug)
	return p != nil, err
}

func (r *promptRepo) ListPublished(_ context.Context, f repository.PromptFilter, offset, limit int) ([]*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := r.find(promptMatches(f))
	switch f.Sort {
	case repository.PromptSortViews:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	case repository.PromptSortUpvotes:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Upvotes > out[j].Upvotes })
	}
	return page(out, offset, limit), nil
}

func (r *promptRepo) CountPublished(_ context.Context, f repository.PromptFilter) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.find(promptMatches(f)))), nil
}

func (r *promptRepo) ListFeatured(_ context.Context, limit int) ([]*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(p *entity.Prompt) bool { return p.IsPublished && p.IsFeatured }), 0, limit), nil
}

func (r *promptRepo) ListRelated(_ context.Context, categoryID, excludeID int64, limit int) ([]*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.find(func(p *entity.Prompt) bool {
		return p.IsPublished && p.ID != excludeID && p.CategoryID != nil && *p.CategoryID == categoryID
	}), 0, limit), nil
}

func (r *promptRepo) byAuthor(authorID int64, publishedOnly bool) []*entity.Prompt {
	return r.find(func(p *entity.Prompt) bool {
		return p.AuthorID == authorID && (!publishedOnly || p.IsPublished)
	})
}

func (r *promptRepo) ListByAuthor(_ context.Context, authorID int64, publishedOnly bool, offset, limit int) ([]*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	return page(r.byAuthor(authorID, publishedOnly), offset, limit), nil
}

func (r *promptRepo) CountByAuthor(_ context.Context, authorID int64, publishedOnly bool) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	return int64(len(r.byAuthor(authorID, publishedOnly))), nil
}

func (r *promptRepo) SumViewsByAuthor(_ context.Context, authorID int64) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, p := range r.byAuthor(authorID, true) {
		sum += p.Views
	}
	return sum, nil
}

func (r *promptRepo) Create(_ context.Context, p *entity.Prompt) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	for _, o := range r.prompts {
		if o.Slug == p.Slug {
			return entity.ErrDuplicateSlug
		}
	}
	p.ID = (*Store)(r).id()
	p.CreatedAt = r.now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.prompts[p.ID] = &cp
	return nil
}

func (r *promptRepo) Update(_ context.Context, p *entity.Prompt) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	old, ok := r.prompts[p.ID]
	if !ok {
		return entity.ErrNotFound
	}
	p.UpdatedAt = r.now()
	cp := *p
	cp.Slug, cp.CreatedAt, cp.Views = old.Slug, old.CreatedAt, old.Views
	r.prompts[p.ID] = &cp
	return nil
}

func (r *promptRepo) Delete(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.prompts[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.prompts, id)
	kept := r.bookmarks[:0]
	for _, b := range r.bookmarks {
		if b.promptID != id {
			kept = append(kept, b)
		}
	}
	r.bookmarks = kept
	return nil
}

func (r *promptRepo) IncrementViews(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	p, ok := r.prompts[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.Views++
	return nil
}

/* ──────────────────────────────── bookmarks ──────────────────────────────── */

type bookmarkRepo Store

func (r *bookmarkRepo) index(userID, promptID int64) int {
	for i, b := range r.bookmarks {
		if b.userID == userID && b.promptID == promptID {
			return i
		}
	}
	return -1
}

func (r *bookmarkRepo) Exists(_ context.Context, userID, promptID int64) (bool, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return false, err
	}
	return r.index(userID, promptID) >= 0, nil
}

func (r *bookmarkRepo) Add(_ context.Context, userID, promptID int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	if r.index(userID, promptID) < 0 {
		r.bookmarks = append(r.bookmarks, bookmark{userID: userID, promptID: promptID, at: r.now()})
	}
	return nil
}

func (r *bookmarkRepo) Remove(_ context.Context, userID, promptID int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	if i := r.index(userID, promptID); i >= 0 {
		r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
	}
	return nil
}

func (r *bookmarkRepo) ListPrompts(_ context.Context, userID int64, offset, limit int) ([]*entity.Prompt, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	var mine []bookmark
	for _, b := range r.bookmarks {
		if b.userID == userID {
			mine = append(mine, b)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].at.After(mine[j].at) })
	out := []*entity.Prompt{}
	for _, b := range mine {
		if p, ok := r.prompts[b.promptID]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return page(out, offset, limit), nil
}

func (r *bookmarkRepo) CountByUser(_ context.Context, userID int64) (int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return 0, err
	}
	var n int64
	for _, b := range r.bookmarks {
		if b.userID == userID {
			n++
		}
	}
	return n, nil
}
