package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/discgolf-api/internal/config"
	"github.com/pkordes/discgolf-api/internal/repo"
	"github.com/pkordes/discgolf-api/internal/storage"
	"github.com/pkordes/discgolf-api/migrations"
)

// openStore builds the storage driver selected by cfg.Driver and wraps it
// with tracing. The returned func releases the driver's connections.
func openStore(ctx context.Context, cfg config.Storage) (storage.Store, func(), error) {
	var (
		store   storage.Store
		closeFn = func() {}
	)

	switch cfg.Driver {
	case storage.DriverFile:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		store = fs

	case storage.DriverPostgres:
		if err := migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		// pgxpool.New does not open connections immediately; the first query does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		store = storage.NewPostgresStore(pool)
		closeFn = pool.Close

	case storage.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = storage.NewRedisStore(client, cfg.RedisPrefix)
		closeFn = func() { _ = client.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	return storage.WithTracing(store, cfg.Driver, nil), closeFn, nil
}

// migrate applies the embedded goose migrations. goose drives database/sql,
// so it gets its own short-lived connection rather than the pgx pool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path)
	}
	return nil
}

// logCollectionSizes reports what was loaded at startup. Lessons are counted
// as open (bookable) lessons, which is what LessonRepo.List returns.
func logCollectionSizes(ctx context.Context, discs repo.DiscRepo, carts repo.CartRepo, lessons repo.LessonRepo, users repo.UserRepo) {
	d, err := discs.List(ctx)
	if err != nil {
		slog.Warn("count discs", "error", err)
	}
	c, err := carts.List(ctx)
	if err != nil {
		slog.Warn("count carts", "error", err)
	}
	l, err := lessons.List(ctx)
	if err != nil {
		slog.Warn("count lessons", "error", err)
	}
	u, err := users.List(ctx)
	if err != nil {
		slog.Warn("count users", "error", err)
	}
	slog.Info("collections loaded",
		"discs", len(d),
		"carts", len(c),
		"open_lessons", len(l),
		"users", len(u),
	)
}
