package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mfigueroa-dev/veloway-backend/internal/batches"
	"github.com/mfigueroa-dev/veloway-backend/internal/cron"
	"github.com/mfigueroa-dev/veloway-backend/internal/drivers"
	"github.com/mfigueroa-dev/veloway-backend/internal/earnings"
	"github.com/mfigueroa-dev/veloway-backend/internal/notifications"
	"github.com/mfigueroa-dev/veloway-backend/internal/orders"
	"github.com/mfigueroa-dev/veloway-backend/internal/routes"
	"github.com/mfigueroa-dev/veloway-backend/internal/warehouses"
	"github.com/mfigueroa-dev/veloway-backend/pkg/config"
	"github.com/mfigueroa-dev/veloway-backend/pkg/db"
	"github.com/mfigueroa-dev/veloway-backend/pkg/logger"
	"github.com/mfigueroa-dev/veloway-backend/pkg/metrics"
	"github.com/mfigueroa-dev/veloway-backend/pkg/migrate"
	"github.com/mfigueroa-dev/veloway-backend/pkg/redis"
)

const lockKeyFormat = "veloway:cron-worker:lock:%s"

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

	cfg.Service.Kind = "cron-worker"

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

	notificationsRepo := notifications.NewRepository(dbClient.DB())
	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	planner, err := routes.NewPlanner(warehouses.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create stop planner", err)
		os.Exit(1)
	}

	earningsService, err := earnings.NewService(earnings.NewRepository(dbClient.DB()), cfg.Earnings)
	if err != nil {
		logg.Error(context.Background(), "failed to create earnings service", err)
		os.Exit(1)
	}

	routesService, err := routes.NewService(routes.ServiceParams{
		Repo:      routes.NewRepository(dbClient.DB()),
		Batches:   batches.NewRepository(dbClient.DB()),
		Orders:    orders.NewRepository(dbClient.DB()),
		Drivers:   drivers.NewRepository(dbClient.DB()),
		Planner:   planner,
		Estimator: routes.NewEstimator(cfg.Routing),
		Notifier:  notificationsService,
		Earnings:  earningsService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create routes service", err)
		os.Exit(1)
	}

	sweepJob, err := cron.NewRouteSweepJob(cron.RouteSweepJobParams{
		Logger:  logg,
		Sweeper: routesService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create route sweep job", err)
		os.Exit(1)
	}

	cleanupJob, err := cron.NewNotificationCleanupJob(cron.NotificationCleanupJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: notificationsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification cleanup job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(sweepJob, cleanupJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Routing.SweepInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
