// Package repotest provides in-memory repositories for use case and handler
// tests. They honour the same contracts as the Postgres adapters: missing
// rows are (nil, nil), unique slugs and names are enforced, listings are
// ordered the same way.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository"
)

// Store backs every repository with one mutex so tests can share state
// across repositories (bookmarks referencing prompts, comments referencing users).
type Store struct {
	mu sync.Mutex

	nextID int64
	now    func() time.Time

	categories map[int64]*entity.Category
	prompts    map[int64]*entity.Prompt
	bookmarks  []bookmark
	posts      map[int64]*entity.Post
	comments   map[int64]*entity.Comment
	news       map[int64]*entity.NewsArticle
	users      map[int64]*entity.User
	profiles   map[int64]*entity.Profile

	// Err, when set, is returned by every repository call.
	Err error
	// ExistsCalls counts ExistsBySlug calls across repositories.
	ExistsCalls int
}

type bookmark struct {
	userID, promptID int64
	at               time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	return &Store{
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
		categories: map[int64]*entity.Category{},
		prompts:    map[int64]*entity.Prompt{},
		posts:      map[int64]*entity.Post{},
		comments:   map[int64]*entity.Comment{},
		news:       map[int64]*entity.NewsArticle{},
		users:      map[int64]*entity.User{},
		profiles:   map[int64]*entity.Profile{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) lock() (func(), error) {
	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return func() {}, s.Err
	}
	return s.mu.Unlock, nil
}

// Repositories returned by the store.
func (s *Store) Categories() repository.CategoryRepository { return (*categoryRepo)(s) }
func (s *Store) Prompts() repository.PromptRepository      { return (*promptRepo)(s) }
func (s *Store) Bookmarks() repository.BookmarkRepository  { return (*bookmarkRepo)(s) }
func (s *Store) Posts() repository.PostRepository          { return (*postRepo)(s) }
func (s *Store) Comments() repository.CommentRepository    { return (*commentRepo)(s) }
func (s *Store) News() repository.NewsRepository           { return (*newsRepo)(s) }
func (s *Store) Users() repository.UserRepository          { return (*userRepo)(s) }
func (s *Store) Profiles() repository.ProfileRepository    { return (*profileRepo)(s) }

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func contains(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func sameCategory(want *int64, got *int64) bool {
	return want == nil || (got != nil && *got == *want)
}

/* ──────────────────────────────── categories ──────────────────────────────── */

type categoryRepo Store

func (r *categoryRepo) List(_ context.Context, kind entity.CategoryKind) ([]*entity.Category, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []*entity.Category{}
	for _, c := range r.categories {
		if c.Kind == kind {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) Get(_ context.Context, id int64) (*entity.Category, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *categoryRepo) GetBySlug(_ context.Context, kind entity.CategoryKind, slug string) (*entity.Category, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	for _, c := range r.categories {
		if c.Kind == kind && c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) ExistsBySlug(ctx context.Context, kind entity.CategoryKind, slug string) (bool, error) {
	r.ExistsCalls++
	c, err := r.GetBySlug(ctx, kind, slug)
	return c != nil, err
}

func (r *categoryRepo) ExistsByName(_ context.Context, kind entity.CategoryKind, name string) (bool, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return false, err
	}
	for _, c := range r.categories {
		if c.Kind == kind && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	for _, o := range r.categories {
		if o.Kind == c.Kind && o.Slug == c.Slug {
			return entity.ErrDuplicateSlug
		}
		if o.Kind == c.Kind && o.Name == c.Name {
			return entity.ErrDuplicateName
		}
	}
	c.ID = (*Store)(r).id()
	c.CreatedAt = r.now()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	old, ok := r.categories[c.ID]
	if !ok {
		return entity.ErrNotFound
	}
	for _, o := range r.categories {
		if o.ID != c.ID && o.Kind == c.Kind && o.Name == c.Name {
			return entity.ErrDuplicateName
		}
	}
	cp := *c
	cp.Slug = old.Slug
	r.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) Delete(_ context.Context, id int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.categories[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.categories, id)
	unset := func(p **int64) {
		if *p != nil && **p == id {
			*p = nil
		}
	}
	for _, p := range r.prompts {
		unset(&p.CategoryID)
	}
	for _, p := range r.posts {
		unset(&p.CategoryID)
	}
	for _, a := range r.news {
		unset(&a.CategoryID)
	}
	return nil
}
