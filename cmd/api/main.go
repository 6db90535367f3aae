package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apiroutes "github.com/mfigueroa-dev/veloway-backend/api/routes"
	"github.com/mfigueroa-dev/veloway-backend/internal/batches"
	"github.com/mfigueroa-dev/veloway-backend/internal/drivers"
	"github.com/mfigueroa-dev/veloway-backend/internal/earnings"
	"github.com/mfigueroa-dev/veloway-backend/internal/notifications"
	"github.com/mfigueroa-dev/veloway-backend/internal/orders"
	"github.com/mfigueroa-dev/veloway-backend/internal/routes"
	"github.com/mfigueroa-dev/veloway-backend/internal/warehouses"
	"github.com/mfigueroa-dev/veloway-backend/pkg/config"
	"github.com/mfigueroa-dev/veloway-backend/pkg/db"
	"github.com/mfigueroa-dev/veloway-backend/pkg/logger"
	"github.com/mfigueroa-dev/veloway-backend/pkg/migrate"
	"github.com/mfigueroa-dev/veloway-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	routesService, err := buildRoutesService(cfg, logg, dbClient, notificationsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create routes service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: apiroutes.NewRouter(cfg, logg, dbClient, redisClient, routesService, notificationsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildRoutesService(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, notifier notifications.Service) (routes.Service, error) {
	planner, err := routes.NewPlanner(warehouses.NewRepository(dbClient.DB()))
	if err != nil {
		return nil, err
	}

	earningsService, err := earnings.NewService(earnings.NewRepository(dbClient.DB()), cfg.Earnings)
	if err != nil {
		return nil, err
	}

	return routes.NewService(routes.ServiceParams{
		Repo:      routes.NewRepository(dbClient.DB()),
		Batches:   batches.NewRepository(dbClient.DB()),
		Orders:    orders.NewRepository(dbClient.DB()),
		Drivers:   drivers.NewRepository(dbClient.DB()),
		Planner:   planner,
		Estimator: routes.NewEstimator(cfg.Routing),
		Notifier:  notifier,
		Earnings:  earningsService,
		Logger:    logg,
	})
}
