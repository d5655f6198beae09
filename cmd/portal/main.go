package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-portal-api/api/swagger"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/server"
	"github.com/noah-isme/campus-portal-api/internal/session"
	"github.com/noah-isme/campus-portal-api/pkg/cache"
	"github.com/noah-isme/campus-portal-api/pkg/config"
	"github.com/noah-isme/campus-portal-api/pkg/database"
	"github.com/noah-isme/campus-portal-api/pkg/logger"
)

// @title Campus Portal API
// @version 1.0.0
// @description Course management portal for administrators and students.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ready := map[string]handler.Pinger{}

	catalog, closeSeed, err := seedCatalog(ctx, cfg, logr, ready)
	if err != nil {
		logr.Fatal("failed to seed catalog", zap.Error(err))
	}
	defer closeSeed()

	backend, closeSessions, err := sessionBackend(ctx, cfg, ready)
	if err != nil {
		logr.Fatal("failed to init session storage", zap.Error(err))
	}
	defer closeSessions()

	app, err := server.NewApp(server.AppDeps{
		Config:         cfg,
		Logger:         logr,
		Catalog:        catalog,
		SessionBackend: backend,
		Ready:          ready,
	})
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}
	app.Start(ctx, cfg)
	defer app.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "seed", cfg.Seed.Source, "sessions", cfg.Session.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func seedCatalog(ctx context.Context, cfg *config.Config, logr *zap.Logger, ready map[string]handler.Pinger) (*repository.CatalogRepository, func(), error) {
	var (
		src     repository.SnapshotSource = repository.NewFixtureRepository()
		closeFn                           = func() {}
	)
	if cfg.Seed.Source == config.SeedSourcePostgres {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		src = repository.NewSeedRepository(db)
		ready["postgres"] = handler.PingFunc(db.PingContext)
		closeFn = func() { _ = db.Close() }
	}

	snap, err := repository.LoadSnapshot(ctx, src)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logr.Info("catalog seeded",
		zap.String("source", cfg.Seed.Source),
		zap.Int("courses", len(snap.Courses)),
		zap.Int("students", len(snap.Students)),
		zap.Int("registrations", len(snap.Registrations)),
	)
	return repository.NewCatalogRepository(snap), closeFn, nil
}

func sessionBackend(ctx context.Context, cfg *config.Config, ready map[string]handler.Pinger) (session.Backend, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return session.NewMemoryBackend(), func() {}, nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	ready["redis"] = handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	return session.NewRedisBackend(client, cfg.Redis.KeyPrefix, cfg.Session.CookieTTL), func() { _ = client.Close() }, nil
}
