// Package main is the entry point for the disc golf storefront API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/discgolf-api/internal/config"
	"github.com/pkordes/discgolf-api/internal/handler"
	"github.com/pkordes/discgolf-api/internal/middleware"
	"github.com/pkordes/discgolf-api/internal/repo"
	"github.com/pkordes/discgolf-api/internal/service"
	"github.com/pkordes/discgolf-api/internal/telemetry"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logLevel, err := cfg.SlogLevel()
	if err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Tracing ----------------------------------------------------------
	// Spans go to stdout next to the logs. Setup registers the provider
	// globally, so the traced store and HTTP middleware pick it up via nil.
	if cfg.TracingEnabled {
		tp, err := telemetry.Setup(os.Stdout, version)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx, tp); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	// --- Storage ----------------------------------------------------------
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("storage ready", "driver", cfg.Storage.Driver)

	// --- Repositories -----------------------------------------------------
	// Each repository loads its whole collection once here and serves reads
	// from memory afterwards.
	discRepo, err := repo.NewDiscRepo(ctx, store)
	if err != nil {
		slog.Error("failed to load discs", "error", err)
		os.Exit(1)
	}
	cartRepo, err := repo.NewCartRepo(ctx, store)
	if err != nil {
		slog.Error("failed to load carts", "error", err)
		os.Exit(1)
	}
	lessonRepo, err := repo.NewLessonRepo(ctx, store)
	if err != nil {
		slog.Error("failed to load lessons", "error", err)
		os.Exit(1)
	}
	userRepo, err := repo.NewUserRepo(ctx, store)
	if err != nil {
		slog.Error("failed to load users", "error", err)
		os.Exit(1)
	}
	logCollectionSizes(ctx, discRepo, cartRepo, lessonRepo, userRepo)

	// --- Services & Handlers ----------------------------------------------
	server := handler.NewServer(
		service.NewDiscService(discRepo),
		service.NewCartService(cartRepo, discRepo),
		service.NewLessonService(lessonRepo),
		service.NewUserService(userRepo),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	if cfg.TracingEnabled {
		r.Use(telemetry.Middleware(nil))
	}
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
