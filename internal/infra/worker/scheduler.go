package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled task.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler runs jobs on their cron schedules. A run that is still going
// when its next tick arrives is skipped rather than overlapped.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *Metrics
	timeout time.Duration
}

func NewScheduler(cfg *Config, logger *slog.Logger, metrics *Metrics) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location()),
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger:  logger,
		metrics: metrics,
		timeout: cfg.JobTimeout,
	}
}

// Add registers job. An invalid schedule is an error.
func (s *Scheduler) Add(job Job) error {
	if _, err := s.cron.AddFunc(job.Schedule, func() { s.RunOnce(context.Background(), job) }); err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name, err)
	}
	return nil
}

// RunOnce runs job under the job timeout and records the outcome.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("job started", slog.String("job", job.Name))
	err := job.Run(ctx)
	s.metrics.RecordJobRun(job.Name, err)
	if err != nil {
		s.logger.Error("job failed",
			slog.String("job", job.Name),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return err
	}
	s.logger.Info("job completed",
		slog.String("job", job.Name),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Start begins ticking in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the ticker and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }
