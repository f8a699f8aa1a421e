package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/repository"
	"prompt-library/internal/service/auth"
)

// Service provides the account and profile use cases.
type Service struct {
	Users     repository.UserRepository
	Profiles  repository.ProfileRepository
	Prompts   repository.PromptRepository
	Bookmarks repository.BookmarkRepository

	// Policy applies to new passwords; the default policy when zero.
	Policy auth.PasswordPolicy
}

func (s *Service) policy() auth.PasswordPolicy {
	if s.Policy.MinLength == 0 {
		return auth.DefaultPasswordPolicy()
	}
	return s.Policy
}

// ProfileView is a public profile page.
type ProfileView struct {
	User           *entity.User
	Profile        *entity.Profile
	RecentPrompts  []*entity.Prompt
	TotalPrompts   int64
	TotalBookmarks int64
	TotalViews     int64
}

// ProfileInput changes the non-nil profile fields.
type ProfileInput struct {
	Bio       *string
	AvatarURL *string
	Website   *string
	Location  *string
	Theme     *entity.Theme
	Language  *entity.Language
}

// Get returns the user with id, or ErrUserNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetProfile returns the public profile of username with live totals.
func (s *Service) GetProfile(ctx context.Context, username string) (*ProfileView, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	v := &ProfileView{User: u}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if v.Profile, err = s.Profiles.GetByUserID(gctx, u.ID); err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if v.RecentPrompts, err = s.Prompts.ListByAuthor(gctx, u.ID, true, 0, RecentPromptsLimit); err != nil {
			return fmt.Errorf("list recent prompts: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if v.TotalPrompts, err = s.Prompts.CountByAuthor(gctx, u.ID, true); err != nil {
			return fmt.Errorf("count prompts: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if v.TotalBookmarks, err = s.Bookmarks.CountByUser(gctx, u.ID); err != nil {
			return fmt.Errorf("count bookmarks: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if v.TotalViews, err = s.Prompts.SumViewsByAuthor(gctx, u.ID); err != nil {
			return fmt.Errorf("sum views: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if v.Profile == nil {
		v.Profile = entity.NewProfile(u.ID)
	}
	return v, nil
}

// Preferences returns the theme and language of userID. A missing profile
// yields the defaults.
func (s *Service) Preferences(ctx context.Context, userID int64) (entity.Theme, entity.Language, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		p = entity.NewProfile(userID)
	}
	return p.Theme, p.Language, nil
}

// UpdateProfile validates and stores the changed fields of u's profile.
func (s *Service) UpdateProfile(ctx context.Context, u *entity.User, in ProfileInput) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, ErrUserNotFound
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		p.AvatarURL = *in.AvatarURL
	}
	if in.Website != nil {
		p.Website = *in.Website
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Theme != nil {
		p.Theme = *in.Theme
	}
	if in.Language != nil {
		p.Language = *in.Language
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// RefreshStats recomputes the denormalised totals of userID's profile.
func (s *Service) RefreshStats(ctx context.Context, userID int64) error {
	prompts, err := s.Prompts.CountByAuthor(ctx, userID, true)
	if err != nil {
		return fmt.Errorf("count prompts: %w", err)
	}
	bookmarks, err := s.Bookmarks.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("count bookmarks: %w", err)
	}
	if err := s.Profiles.UpdateStats(ctx, userID, prompts, bookmarks); err != nil {
		return fmt.Errorf("update stats: %w", err)
	}
	return nil
}

// RefreshAllStats refreshes every profile with at most concurrency
// refreshes in flight and returns the number refreshed. The first error
// cancels the remaining refreshes.
func (s *Service) RefreshAllStats(ctx context.Context, concurrency int) (int, error) {
	start := time.Now()
	ids, err := s.Users.ListIDs(ctx)
	if err != nil {
		err = fmt.Errorf("list users: %w", err)
		metrics.RecordWorkerJob("refresh_profile_stats", time.Since(start), err)
		return 0, err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range ids {
		g.Go(func() error {
			return s.RefreshStats(gctx, id)
		})
	}
	err = g.Wait()
	metrics.RecordWorkerJob("refresh_profile_stats", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	metrics.RecordProfilesRefreshed(len(ids))
	return len(ids), nil
}
