// Package main is the entry point for the Filmorate HTTP server.
//
// The service exposes a REST API for a film catalog with MPA ratings and
// genres, user accounts, likes, friendships, popularity rankings and
// common-friends queries. Persistence is selected at startup: an
// in-memory backend for development or PostgreSQL for real deployments,
// with an optional Redis popularity cache on top.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/filmorate/filmorate/config"
	"github.com/filmorate/filmorate/internal/domain/film"
	"github.com/filmorate/filmorate/internal/domain/user"
	"github.com/filmorate/filmorate/internal/infrastructure/persistence/memory"
	"github.com/filmorate/filmorate/internal/infrastructure/persistence/postgres"
	"github.com/filmorate/filmorate/internal/infrastructure/persistence/redis"
	httpserver "github.com/filmorate/filmorate/internal/interface/http"
	"github.com/filmorate/filmorate/internal/service"
	"github.com/filmorate/filmorate/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// repositories bundles the persistence layer behind domain interfaces, so
// run does not care which backend produced them.
type repositories struct {
	films       film.Repository
	genres      film.GenreRepository
	mpa         film.MpaRepository
	likes       film.LikeRepository
	users       user.Repository
	friendships user.FriendshipRepository

	// health is pinged by the health endpoint; nil for memory storage.
	health httpserver.HealthChecker

	close func()
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)
	log.Info("starting filmorate",
		logger.String("version", cfg.App.Version),
		logger.String("environment", string(cfg.App.Environment)),
		logger.String("storage", string(cfg.Storage)),
	)

	repos, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.close()

	cache, cacheClose := buildPopularityCache(cfg, log)
	defer cacheClose()

	validation := service.NewValidationService(repos.users, repos.films, repos.genres, repos.mpa, log)
	films := service.NewFilmService(repos.films, repos.genres, repos.likes, cache, validation, log)
	users := service.NewUserService(repos.users, repos.friendships, repos.likes, cache, validation, log)
	friendships := service.NewFriendshipService(repos.friendships, repos.users, validation, log)
	likes := service.NewLikeService(repos.likes, films, cache, validation, log)
	references := service.NewReferenceService(repos.genres, repos.mpa, log)

	server := httpserver.NewServer(
		httpserver.Config{
			Host:               cfg.HTTP.Host,
			Port:               cfg.HTTP.Port,
			ReadTimeout:        cfg.HTTP.ReadTimeout,
			WriteTimeout:       cfg.HTTP.WriteTimeout,
			IdleTimeout:        cfg.HTTP.IdleTimeout,
			MaxHeaderBytes:     1 << 20,
			RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		},
		httpserver.Dependencies{
			Films:       films,
			Users:       users,
			Friendships: friendships,
			Likes:       likes,
			References:  references,
			Logger:      log,
			Storage:     repos.health,
		},
	)

	errCh := server.StartAsync()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("filmorate stopped")
	return nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts)
}

func buildRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		return buildPostgresRepositories(ctx, cfg, log)
	default:
		return buildMemoryRepositories(log), nil
	}
}

func buildMemoryRepositories(log *logger.Logger) *repositories {
	log.Info("using in-memory storage")

	return &repositories{
		films:       memory.NewFilmStore(),
		genres:      memory.NewGenreStore(memory.DefaultGenres()),
		mpa:         memory.NewMpaStore(memory.DefaultMpaRatings()),
		likes:       memory.NewLikeStore(),
		users:       memory.NewUserStore(),
		friendships: memory.NewFriendshipStore(),
		close:       func() {},
	}
}

func buildPostgresRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL, postgres.PoolTuning{
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Database.Migrate {
		migrator := postgres.NewMigrator(conn)
		if err := migrator.Migrate(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("database migrations applied")
	}

	log.Info("using postgres storage")

	return &repositories{
		films:       postgres.NewFilmRepository(conn),
		genres:      postgres.NewGenreRepository(conn),
		mpa:         postgres.NewMpaRepository(conn),
		likes:       postgres.NewLikeRepository(conn),
		users:       postgres.NewUserRepository(conn),
		friendships: postgres.NewFriendshipRepository(conn),
		health:      conn,
		close:       conn.Close,
	}, nil
}

// buildPopularityCache returns the Redis-backed popularity ranking and its
// connection closer, or nil and a no-op when Redis is disabled or
// unreachable. Services treat a nil cache as "no cache".
func buildPopularityCache(cfg *config.Config, log *logger.Logger) (film.PopularityCache, func()) {
	if cfg.Redis.Disabled {
		log.Info("popularity cache disabled")
		return nil, func() {}
	}

	cacheCfg := redis.DefaultConfig()
	cacheCfg.Host = cfg.Redis.Host
	cacheCfg.Port = cfg.Redis.Port
	cacheCfg.Password = cfg.Redis.Password
	cacheCfg.DB = cfg.Redis.DB
	cacheCfg.PoolSize = cfg.Redis.PoolSize
	cacheCfg.MinIdleConns = cfg.Redis.MinIdleConns
	cacheCfg.DialTimeout = cfg.Redis.DialTimeout
	cacheCfg.ReadTimeout = cfg.Redis.ReadTimeout
	cacheCfg.WriteTimeout = cfg.Redis.WriteTimeout

	cache, err := redis.NewCache(cacheCfg)
	if err != nil {
		log.Warn("redis unavailable, popularity cache disabled", logger.Err(err))
		return nil, func() {}
	}

	log.Info("popularity cache enabled", logger.String("addr", cacheCfg.Addr()))
	return redis.NewPopularityCache(cache), func() {
		if err := cache.Close(); err != nil {
			log.Warn("redis close failed", logger.Err(err))
		}
	}
}
