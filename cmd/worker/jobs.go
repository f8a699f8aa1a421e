package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"prompt-library/internal/infra/worker"
	"prompt-library/internal/observability/metrics"
	"prompt-library/internal/repository"
	userUC "prompt-library/internal/usecase/user"
)

// contentCounts reads the published totals the gauges report.
type contentCounts struct {
	Prompts repository.PromptRepository
	Posts   repository.PostRepository
	News    repository.NewsRepository
	Users   repository.UserRepository
}

// refreshGauges sets content_items_total for every kind. Counts run in
// parallel; the first failure leaves all gauges untouched.
func (c contentCounts) refreshGauges(ctx context.Context) error {
	var prompts, posts, news int64
	var users int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		prompts, err = c.Prompts.CountPublished(gctx, repository.PromptFilter{})
		return err
	})
	g.Go(func() (err error) {
		posts, err = c.Posts.CountPublished(gctx, repository.PostFilter{})
		return err
	})
	g.Go(func() (err error) {
		news, err = c.News.CountPublished(gctx, repository.NewsFilter{})
		return err
	})
	g.Go(func() error {
		ids, err := c.Users.ListIDs(gctx)
		users = len(ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("count content: %w", err)
	}

	metrics.UpdateContentTotal("prompts", prompts)
	metrics.UpdateContentTotal("posts", posts)
	metrics.UpdateContentTotal("news", news)
	metrics.UpdateContentTotal("users", int64(users))
	return nil
}

// jobs returns the scheduled work of the worker.
func jobs(cfg *worker.Config, users *userUC.Service, counts contentCounts) []worker.Job {
	return []worker.Job{
		{
			Name:     "refresh_profile_stats",
			Schedule: cfg.StatsSchedule,
			Run: func(ctx context.Context) error {
				_, err := users.RefreshAllStats(ctx, cfg.Concurrency)
				return err
			},
		},
		{
			Name:     "refresh_content_gauges",
			Schedule: cfg.GaugesSchedule,
			Run:      counts.refreshGauges,
		},
	}
}
