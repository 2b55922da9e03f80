package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datenight/internal/config"
	"datenight/internal/contact"
	"datenight/internal/datafile"
	"datenight/internal/db"
	"datenight/internal/featured"
	"datenight/internal/insights"
	"datenight/internal/logging"
	"datenight/internal/neighborhood"
	"datenight/internal/newsletter"
	"datenight/internal/normalize"
	"datenight/internal/redirect"
	"datenight/internal/restaurant"
	"datenight/internal/router"
	"datenight/internal/scoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "datenight api:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── DATA SOURCE ─────────────────────────
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	// ───────────────────────── REDIRECTS ─────────────────────────
	rules, err := legacyRedirects(ctx, repo, logger)
	if err != nil {
		return err
	}
	redirects := redirect.NewTable(rules)
	logger.Info("[REDIRECT] legacy redirects loaded", zap.Int("rules", redirects.Len()))

	var watcher *datafile.Watcher
	if mem, ok := repo.(*restaurant.MemoryRepository); ok && cfg.WatchData {
		watcher = datafile.NewWatcher(cfg.DataFile, func(ctx context.Context) error {
			records, err := normalize.LoadRestaurants(cfg.DataFile, fileOptions(cfg, logger))
			if err != nil {
				return err
			}
			mem.Replace(records)

			rules, err := legacyRedirects(ctx, mem, logger)
			if err != nil {
				return err
			}
			redirects.Replace(rules)
			logger.Info("[DATA] restaurants replaced",
				zap.Int("count", len(records)),
				zap.Int("redirects", len(rules)),
			)
			return nil
		}, logger)
	}

	// ───────────────────────── FEATURED ─────────────────────────
	var store featured.Store = featured.NewMemoryStore()
	if cfg.RedisURL != "" {
		rs, err := featured.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs
		logger.Info("[FEATURED] using redis store")
	}

	// ───────────────────────── HANDLERS ─────────────────────────
	service := restaurant.NewService(repo, logger)
	deps := router.Deps{
		Restaurants: restaurant.NewHandler(service, logger),
		Featured:    featured.NewHandler(store, logger),
		Insights:    insights.NewHandler(insights.NewService(service, logger)),
		Contact:     contact.NewHandler(logger),
		Newsletter: newsletter.NewHandler(
			newsletter.NewClient(cfg.NewsletterURL, cfg.NewsletterKey, nil),
			logger,
		),
		Redirects:   redirects,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	}
	if cfg.JWTSecret == "" {
		logger.Warn("[AUTH] JWT_SECRET not set, admin routes will reject every request")
	}

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("[API] listening", zap.String("addr", srv.Addr), zap.String("source", cfg.DataSource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("[API] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	return g.Wait()
}

// legacyRedirects derives the /restaurant/{slug} rules from the served data.
func legacyRedirects(ctx context.Context, src redirect.SlugSource, logger *zap.Logger) ([]redirect.Rule, error) {
	rules, ambiguous, err := redirect.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(ambiguous) > 0 {
		logger.Warn("[REDIRECT] ambiguous legacy slugs skipped", zap.Strings("slugs", ambiguous))
	}
	return redirect.Compact(rules)
}

func fileOptions(cfg *config.Config, logger *zap.Logger) normalize.Options {
	scoreCfg, err := scoring.LoadConfig(cfg.ScoringConfig)
	if err != nil {
		// validated at startup; a later edit that breaks it falls back
		logger.Warn("[DATA] scoring config unreadable, using defaults", zap.Error(err))
		scoreCfg = scoring.DefaultConfig()
	}
	return normalize.Options{
		Defaults:   normalize.DefaultDefaults(),
		Classifier: neighborhood.NewClassifier(),
		Scorer:     scoring.NewScorer(scoreCfg, scoring.NoJitter),
		Logger:     logger,
	}
}

// openRepository picks the JSON file or Postgres backend.
func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (restaurant.Repository, func(), error) {
	noop := func() {}

	switch cfg.DataSource {
	case config.SourcePostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, noop, err
		}
		if err := db.InitSchema(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return restaurant.NewPostgresRepository(pool), pool.Close, nil

	default:
		if _, err := scoring.LoadConfig(cfg.ScoringConfig); err != nil {
			return nil, noop, err
		}
		records, err := normalize.LoadRestaurants(cfg.DataFile, fileOptions(cfg, logger))
		if err != nil {
			return nil, noop, err
		}
		logger.Info("[DATA] loaded restaurants from file",
			zap.String("file", cfg.DataFile),
			zap.Int("count", len(records)),
		)
		return restaurant.NewMemoryRepository(records), noop, nil
	}
}
