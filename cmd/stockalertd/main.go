package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/stockalert-app/stockalert-backend/api/routes"
	"github.com/stockalert-app/stockalert-backend/internal/alerts"
	"github.com/stockalert-app/stockalert-backend/internal/connectivity"
	"github.com/stockalert-app/stockalert-backend/internal/ledger"
	"github.com/stockalert-app/stockalert-backend/internal/notifications"
	"github.com/stockalert-app/stockalert-backend/internal/products"
	"github.com/stockalert-app/stockalert-backend/internal/stock"
	"github.com/stockalert-app/stockalert-backend/internal/watch"
	"github.com/stockalert-app/stockalert-backend/pkg/config"
	"github.com/stockalert-app/stockalert-backend/pkg/db"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
	"github.com/stockalert-app/stockalert-backend/pkg/metrics"
	"github.com/stockalert-app/stockalert-backend/pkg/migrate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "stockalertd"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "stockalertd",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open local store", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing local store", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	ledgerMetrics := metrics.NewLedgerMetrics(registry)
	alertMetrics := metrics.NewAlertMetrics(registry)
	watcherMetrics := metrics.NewWatcherMetrics(registry)

	ledgerRepo := ledger.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	alertsRepo := alerts.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())

	ledgerService, err := ledger.NewService(ledger.ServiceParams{
		Repo:    ledgerRepo,
		Metrics: ledgerMetrics,
	})
	requireService(logg, "ledger", err)

	productsService, err := products.NewService(productsRepo)
	requireService(logg, "products", err)

	stockService, err := stock.NewService(stock.ServiceParams{
		Products:  productsRepo,
		Ledger:    ledgerRepo,
		Metrics:   ledgerMetrics,
		Logger:    logg,
		Threshold: cfg.Alerts.LowStockThreshold,
	})
	requireService(logg, "stock", err)

	outbox, err := notifications.NewOutbox(notificationsRepo)
	requireService(logg, "outbox", err)

	permissionStore := alerts.NewDBPermissionStore(dbClient.DB())

	alertsService, err := alerts.NewService(alerts.ServiceParams{
		Permissions: permissionStore,
		Notifier:    outbox,
		Repo:        alertsRepo,
		Metrics:     alertMetrics,
		Logger:      logg,
		Cooldown:    cfg.Alerts.Cooldown,
		MaxNamed:    cfg.Alerts.MaxNamedProducts,
	})
	requireService(logg, "alerts", err)

	notificationsService, err := notifications.NewService(notificationsRepo)
	requireService(logg, "notifications", err)

	watchService, err := watch.NewService(watch.ServiceParams{
		Logger:   logg,
		Stock:    stockService,
		Alerts:   alertsService,
		Metrics:  watcherMetrics,
		Interval: cfg.Watch.Interval,
	})
	requireService(logg, "watch", err)

	connectivitySource := connectivity.NewManualSource(true)
	connectivityMonitor, err := connectivity.NewMonitor(connectivitySource, logg)
	requireService(logg, "connectivity", err)
	defer connectivityMonitor.Close()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := watchService.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(rootCtx, "watch loop stopped unexpectedly", err)
		}
	}()

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			registry,
			ledgerService,
			productsService,
			stockService,
			alertsService,
			notificationsService,
			permissionStore,
			watchService,
			connectivitySource,
			connectivityMonitor,
		),
	}

	ctx := logg.WithFields(rootCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting stockalert daemon")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-rootCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = multierr.Append(errs, err)
	}
	connectivityMonitor.Close()
	if errs != nil {
		logg.Error(ctx, "shutdown finished with errors", errs)
		return
	}
	logg.Info(ctx, "shutdown complete")
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to build service", err)
	os.Exit(1)
}
