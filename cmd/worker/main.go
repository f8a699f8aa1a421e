package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	pgRepo "prompt-library/internal/infra/adapter/persistence/postgres"
	"prompt-library/internal/infra/db"
	workerPkg "prompt-library/internal/infra/worker"
	"prompt-library/internal/observability/logging"
	userUC "prompt-library/internal/usecase/user"
	envconfig "prompt-library/pkg/config"
)

func main() {
	logger := initLogger()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("stats_schedule", cfg.StatsSchedule),
		slog.String("gauges_schedule", cfg.GaugesSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("concurrency", cfg.Concurrency),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("health_port", cfg.HealthPort))

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	prompts := pgRepo.NewPromptRepo(database)
	users := pgRepo.NewUserRepo(database)
	userSvc := &userUC.Service{
		Users:     users,
		Profiles:  pgRepo.NewProfileRepo(database),
		Prompts:   prompts,
		Bookmarks: pgRepo.NewBookmarkRepo(database),
	}
	counts := contentCounts{
		Prompts: prompts,
		Posts:   pgRepo.NewPostRepo(database),
		News:    pgRepo.NewNewsRepo(database),
		Users:   users,
	}

	scheduler := workerPkg.NewScheduler(cfg, logger, workerMetrics)
	for _, job := range jobs(cfg, userSvc, counts) {
		if err := scheduler.Add(job); err != nil {
			logger.Error("failed to add cron job", slog.Any("error", err))
			os.Exit(1)
		}
		// Populate gauges and profiles immediately instead of waiting for the first tick.
		go func() { _ = scheduler.RunOnce(ctx, job) }()
	}
	scheduler.Start()
	healthServer.SetReady(true)
	logger.Info("worker started")

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)
	<-scheduler.Stop().Done()
	logger.Info("worker stopped")
}

func initLogger() *slog.Logger {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the pool and waits for the API to apply migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, envconfig.GetEnvString("DATABASE_URL", ""))
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	waitForMigrations(ctx, logger, database)
	return database
}

// waitForMigrations polls for the newest table until it exists.
func waitForMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM news_articles LIMIT 1"
	for attempt := 1; attempt <= 10; attempt++ {
		if _, err := database.ExecContext(ctx, probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", attempt))
		select {
		case <-ctx.Done():
			logger.Error("gave up waiting for migrations", slog.Any("error", ctx.Err()))
			os.Exit(1)
		case <-time.After(3 * time.Second):
		}
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}
