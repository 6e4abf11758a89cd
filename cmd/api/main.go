package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/prijslijst/pricelist-backend/api/routes"
	"github.com/prijslijst/pricelist-backend/internal/catalog"
	"github.com/prijslijst/pricelist-backend/internal/orders"
	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/internal/shops"
	"github.com/prijslijst/pricelist-backend/internal/tables"
	"github.com/prijslijst/pricelist-backend/internal/users"
	"github.com/prijslijst/pricelist-backend/pkg/config"
	"github.com/prijslijst/pricelist-backend/pkg/db"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
	"github.com/prijslijst/pricelist-backend/pkg/metrics"
	"github.com/prijslijst/pricelist-backend/pkg/migrate"
	"github.com/prijslijst/pricelist-backend/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gormDB := dbClient.DB()

	shopRepo := shops.NewRepository(gormDB)

	pricelistSvc, err := pricelist.NewService(
		pricelist.NewRepository(gormDB),
		shopRepo,
		dbClient,
		redisClient,
		cfg.Menu.CacheTTL,
		logg,
	)
	exitOn(logg, "pricelist service", err)

	shopSvc, err := shops.NewService(shopRepo, pricelistSvc, logg)
	exitOn(logg, "shop service", err)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(gormDB), dbClient, pricelistSvc, logg)
	exitOn(logg, "catalog service", err)

	orderSvc, err := orders.NewService(
		orders.NewRepository(gormDB),
		dbClient,
		pricelistSvc,
		shopRepo,
		cfg.Orders,
		httpMetrics,
		logg,
	)
	exitOn(logg, "order service", err)

	tableSvc, err := tables.NewService(tables.NewRepository(gormDB))
	exitOn(logg, "table service", err)

	userSvc, err := users.NewService(users.NewRepository(gormDB), cfg.JWT, cfg.Password, logg)
	exitOn(logg, "user service", err)

	router := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Logger:    logg,
		Metrics:   httpMetrics,
		Registry:  registry,
		DB:        dbClient,
		Redis:     redisClient,
		Shops:     shopSvc,
		Catalog:   catalogSvc,
		Pricelist: pricelistSvc,
		Orders:    orderSvc,
		Tables:    tableSvc,
		Users:     userSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(drainCtx))
		closeErr = multierr.Append(closeErr, redisClient.Close())
		closeErr = multierr.Append(closeErr, dbClient.Close())
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
