package repotest

import (
	"context"
	"sort"
	"strings"

	"prompt-library/internal/domain/entity"
)

type userRepo Store

func (r *userRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	var byEmail *entity.User
	for _, u := range r.users {
		if u.Username == login {
			cp := *u
			return &cp, nil
		}
		if byEmail == nil && strings.EqualFold(u.Email, login) {
			cp := *u
			byEmail = &cp
		}
	}
	return byEmail, nil
}

func (r *userRepo) CreateWithProfile(_ context.Context, u *entity.User, p *entity.Profile) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	for _, o := range r.users {
		if o.Username == u.Username || strings.EqualFold(o.Email, u.Email) {
			return entity.ErrDuplicateUser
		}
	}
	u.ID = (*Store)(r).id()
	u.CreatedAt = r.now()
	p.ID = (*Store)(r).id()
	p.UserID = u.ID
	p.CreatedAt, p.UpdatedAt = u.CreatedAt, u.CreatedAt
	cu, cpr := *u, *p
	r.users[u.ID] = &cu
	r.profiles[u.ID] = &cpr
	return nil
}

func (r *userRepo) ListIDs(_ context.Context) ([]int64, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

/* ──────────────────────────────── profiles ──────────────────────────────── */

type profileRepo Store

func (r *profileRepo) GetByUserID(_ context.Context, userID int64) (*entity.Profile, error) {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *profileRepo) Update(_ context.Context, p *entity.Profile) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	old, ok := r.profiles[p.UserID]
	if !ok {
		return entity.ErrNotFound
	}
	old.Bio, old.AvatarURL, old.Website, old.Location = p.Bio, p.AvatarURL, p.Website, p.Location
	old.Theme, old.Language = p.Theme, p.Language
	old.UpdatedAt = r.now()
	return nil
}

func (r *profileRepo) UpdateStats(_ context.Context, userID, totalPrompts, totalBookmarks int64) error {
	unlock, err := (*Store)(r).lock()
	defer unlock()
	if err != nil {
		return err
	}
	p, ok := r.profiles[userID]
	if !ok {
		return entity.ErrNotFound
	}
	p.TotalPrompts, p.TotalBookmarks = totalPrompts, totalBookmarks
	p.UpdatedAt = r.now()
	return nil
}
