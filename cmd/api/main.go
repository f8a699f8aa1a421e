package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"prompt-library/internal/config"
	pgRepo "prompt-library/internal/infra/adapter/persistence/postgres"
	"prompt-library/internal/infra/db"
	"prompt-library/internal/observability/logging"
	"prompt-library/internal/observability/tracing"
	"prompt-library/internal/resilience/circuitbreaker"
	authservice "prompt-library/internal/service/auth"

	blogUC "prompt-library/internal/usecase/blog"
	catUC "prompt-library/internal/usecase/category"
	newsUC "prompt-library/internal/usecase/news"
	promptUC "prompt-library/internal/usecase/prompt"
	userUC "prompt-library/internal/usecase/user"

	hhttp "prompt-library/internal/handler/http"
	hauth "prompt-library/internal/handler/http/auth"
	hblog "prompt-library/internal/handler/http/blog"
	hcategory "prompt-library/internal/handler/http/category"
	hhome "prompt-library/internal/handler/http/home"
	"prompt-library/internal/handler/http/middleware"
	hnews "prompt-library/internal/handler/http/news"
	hprompt "prompt-library/internal/handler/http/prompt"
	"prompt-library/internal/handler/http/requestid"
	hsite "prompt-library/internal/handler/http/site"
	huser "prompt-library/internal/handler/http/user"
)

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	site, err := config.LoadSiteConfig(cfg.SitePath)
	if err != nil {
		logger.Error("failed to load site configuration",
			slog.String("path", cfg.SitePath), slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := initTracing(logger, cfg)
	database := initDatabase(logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	app := newApp(database, cfg, site)
	if err := seedCategories(context.Background(), app.categories, site); err != nil {
		logger.Error("failed to seed categories", slog.Any("error", err))
		os.Exit(1)
	}

	proxyCfg, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsCfg, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("CORS configured",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Int("max_age", corsCfg.MaxAge))

	authLimiter := middleware.NewRateLimiter(cfg.AuthRate.PerMinute, cfg.AuthRate.Burst, middleware.NewIPExtractor(proxyCfg))
	logger.Info("auth rate limiting configured",
		slog.Int("per_minute", cfg.AuthRate.PerMinute),
		slog.Int("burst", cfg.AuthRate.Burst),
		slog.Bool("trust_proxy", proxyCfg.Enabled))

	mux := setupRoutes(app, authLimiter)
	handler := applyMiddleware(logger, cfg, corsCfg, hauth.Authz(app.tokens)(mux))

	runServer(logger, cfg, handler, authLimiter, shutdownTracing)
}

func initLogger() *slog.Logger {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initTracing installs the SDK provider when TRACING_ENABLED is set. The
// returned function is a no-op otherwise.
func initTracing(logger *slog.Logger, cfg *config.Config) func(context.Context) error {
	if !cfg.TracingEnabled {
		return func(context.Context) error { return nil }
	}
	logger.Info("tracing enabled")
	return tracing.Init(1.0)
}

// initDatabase opens the pool and applies the embedded migrations.
func initDatabase(logger *slog.Logger, cfg *config.Config) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Migrate(ctx, database, logger); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// app holds the wired services.
type app struct {
	cfg     *config.Config
	site    *config.SiteConfig
	db      *sql.DB
	breaker *circuitbreaker.DBCircuitBreaker
	tokens  *authservice.Tokens
	auth    *authservice.AuthService

	categories *catUC.Service
	prompts    *promptUC.Service
	posts      *blogUC.Service
	news       *newsUC.Service
	users      *userUC.Service
}

// newApp builds repositories and services. Content repositories go through
// the database circuit breaker. The user repository takes the pool itself
// since registration runs in a transaction.
func newApp(database *sql.DB, cfg *config.Config, site *config.SiteConfig) *app {
	breaker := circuitbreaker.NewDBCircuitBreakerWithConfig(database, cfg.Breaker)

	categories := pgRepo.NewCategoryRepo(breaker)
	prompts := pgRepo.NewPromptRepo(breaker)
	bookmarks := pgRepo.NewBookmarkRepo(breaker)
	users := pgRepo.NewUserRepo(database)

	tokens := authservice.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	return &app{
		cfg:     cfg,
		site:    site,
		db:      database,
		breaker: breaker,
		tokens:  tokens,
		auth:    authservice.NewAuthService(authservice.NewDBProvider(users), tokens),

		categories: &catUC.Service{Repo: categories},
		prompts:    &promptUC.Service{Prompts: prompts, Bookmarks: bookmarks, Categories: categories},
		posts: &blogUC.Service{
			Posts:      pgRepo.NewPostRepo(breaker),
			Comments:   pgRepo.NewCommentRepo(breaker),
			Categories: categories,
		},
		news: &newsUC.Service{Articles: pgRepo.NewNewsRepo(breaker), Categories: categories},
		users: &userUC.Service{
			Users:     users,
			Profiles:  pgRepo.NewProfileRepo(breaker),
			Prompts:   prompts,
			Bookmarks: bookmarks,
		},
	}
}

// setupRoutes registers every route on one mux. Authorization is applied
// around the whole mux by hauth.Authz.
func setupRoutes(a *app, authLimiter *middleware.RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	hhttp.RegisterHealth(mux, &hhttp.HealthHandler{
		DB:          a.db,
		Version:     a.cfg.Version,
		Breaker:     a.breaker,
		RateLimiter: authLimiter,
	})
	mux.Handle("POST   /auth/token", authLimiter.Middleware(hauth.TokenHandler(a.auth)))

	huser.Register(mux, a.users, authLimiter.Middleware)
	hcategory.Register(mux, a.categories)
	hprompt.Register(mux, a.prompts, a.cfg.Pagination)
	hblog.Register(mux, a.posts, a.cfg.Pagination)
	hnews.Register(mux, a.news, a.cfg.Pagination)
	hhome.Register(mux, hhome.Handler{Prompts: a.prompts, Posts: a.posts, News: a.news})
	hsite.Register(mux, hsite.Handler{Site: a.site, Users: a.users})

	return mux
}

// applyMiddleware wraps handler, outermost first:
// CORS → Request ID → Tracing → Recovery → Logging → Input validation →
// Body limit → Metrics → Timeout.
func applyMiddleware(logger *slog.Logger, cfg *config.Config, corsCfg middleware.CORSConfig, handler http.Handler) http.Handler {
	return hhttp.Chain(handler,
		middleware.CORS(corsCfg),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(cfg.BodyLimit),
		hhttp.MetricsMiddleware,
		hhttp.Timeout(cfg.RequestTimeout),
	)
}

// runServer serves until SIGINT or SIGTERM, then drains connections.
func runServer(
	logger *slog.Logger,
	cfg *config.Config,
	handler http.Handler,
	authLimiter *middleware.RateLimiter,
	shutdownTracing func(context.Context) error,
) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hhttp.StartRateLimitCleanup(ctx, authLimiter, hhttp.LoadCleanupConfigFromEnv(), "auth")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
