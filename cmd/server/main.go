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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"pathways-backend-go/internal/config"
	"pathways-backend-go/internal/db"
	"pathways-backend-go/internal/events"
	httpapi "pathways-backend-go/internal/http"
	"pathways-backend-go/internal/logging"
	"pathways-backend-go/internal/migrations"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, closeLogs, err := logging.New(cfg.LogDir, cfg.LogRetentionDays, cfg.LogLevel)
	if err != nil {
		logger.Warn("file logging disabled", "error", err)
	}
	defer closeLogs()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrations.Apply(ctx, database); err != nil {
		_ = database.Close()
		return err
	}
	st := store.NewPostgres(database)
	defer st.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return err
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable at startup", "error", err)
	}

	hub := services.NewAdminHub(logger)
	bus := events.NewBus(logger)
	defer bus.Close()

	server := httpapi.NewServer(st, cfg, rdb, hub, bus, logger)
	if err := services.EnsureAdmin(ctx, st, server.Tokens, logger, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	if err := bus.SubscribeActivity(ctx, hub.BroadcastActivity); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		metricsLoop(gctx, st, hub, cfg, logger)
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", "addr", httpServer.Addr, "env", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}

func metricsLoop(ctx context.Context, st store.Store, hub *services.AdminHub, cfg config.Config, logger *slog.Logger) {
	interval := time.Duration(cfg.MetricsSampleSeconds) * time.Second
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sample, err := services.CaptureMetrics(ctx, st, cfg.MetricsDiskPath)
			if err != nil {
				logger.Warn("metrics capture failed", "error", err)
				continue
			}
			hub.BroadcastMetrics(sample)
		case <-ctx.Done():
			return
		}
	}
}
