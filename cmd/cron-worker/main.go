package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litera-id/litera-backend/internal/cron"
	loansvc "github.com/litera-id/litera-backend/internal/loans"
	"github.com/litera-id/litera-backend/pkg/config"
	"github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/logger"
	"github.com/litera-id/litera-backend/pkg/metrics"
	"github.com/litera-id/litera-backend/pkg/migrate"
	"github.com/litera-id/litera-backend/pkg/redis"
)

const lockKeyFormat = "litera:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	loanRepo := loansvc.NewRepository(dbClient.DB())

	overdueJob, err := cron.NewOverdueSweepJob(cron.OverdueSweepJobParams{
		Logger:     logg,
		Repository: loanRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create overdue sweep job", err)
		os.Exit(1)
	}

	achievementJob, err := cron.NewAchievementSweepJob(cron.AchievementSweepJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: loanRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create achievement sweep job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.Interval)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(overdueJob, achievementJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Cron.Interval.String(),
	})

	go serveMetrics(ctx, cfg, logg)

	logg.Info(ctx, "starting cron worker")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, cfg *config.Config, logg *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Cron.MetricsPort
	logg.Info(logg.WithField(ctx, "addr", addr), "serving cron metrics")
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "metrics listener stopped unexpectedly", err)
	}
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
