package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quietravel/gateway/internal/api"
	"github.com/quietravel/gateway/internal/cache"
	"github.com/quietravel/gateway/internal/config"
	"github.com/quietravel/gateway/internal/destination"
	"github.com/quietravel/gateway/internal/nearby"
	"github.com/quietravel/gateway/internal/screen"
	"github.com/quietravel/gateway/internal/storage"
	"github.com/quietravel/gateway/migrations"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	ranker, err := nearby.NewRanker(nearby.Policy(cfg.NearbyPolicy))
	if err != nil {
		return err
	}

	catalog := destination.NewCatalog(destination.NewClient(cfg.CatalogBaseURL), log)

	var (
		dbPing    api.Pinger
		redisPing api.Pinger
		history   screen.PlanHistory
		stats     screen.StatsSource
	)

	// PostgreSQL is optional: without it plans are not kept.
	if cfg.DatabaseURL != "" {
		pool, err := storage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		n, err := storage.RunMigrations(ctx, pool, migrationsFS(cfg.MigrationsDir))
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied", "count", n)

		repo := storage.NewRepository(pool)
		history, stats = repo, repo
		dbPing = &pgxPoolPinger{pool: pool}
	} else {
		log.Info("DATABASE_URL not set, plan history disabled")
	}

	// Redis is optional: without it every detail lookup goes upstream.
	if cfg.RedisURL != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		detailCache := cache.NewCacheWithTTL(redisClient, cfg.DetailCacheTTL)
		catalog.WithDetailCache(detailCache)
		redisPing = detailCache
	} else {
		log.Info("REDIS_URL not set, detail cache disabled")
	}

	plans := screen.NewPlan(catalog, history, log)
	profile := screen.NewProfile(stats)
	handlers := api.NewHandlers(catalog, ranker, plans, profile, log)

	router := api.NewRouter(handlers, cfg.RateLimitPerMinute, dbPing, redisPing, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting",
			"addr", srv.Addr,
			"catalog", cfg.CatalogBaseURL,
			"nearby_policy", cfg.NearbyPolicy,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// migrationsFS prefers an on-disk directory when one is configured and falls
// back to the migrations compiled into the binary.
func migrationsFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return migrations.FS
}

// pgxPoolPinger adapts pgxpool.Pool to api.Pinger.
type pgxPoolPinger struct {
	pool *pgxpool.Pool
}

func (p *pgxPoolPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
