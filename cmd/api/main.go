package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmarroquin/freightops-backend/api/routes"
	"github.com/dmarroquin/freightops-backend/internal/commissions"
	"github.com/dmarroquin/freightops-backend/internal/leads"
	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/config"
	"github.com/dmarroquin/freightops-backend/pkg/db"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
	"github.com/dmarroquin/freightops-backend/pkg/metrics"
	"github.com/dmarroquin/freightops-backend/pkg/migrate"
	"github.com/dmarroquin/freightops-backend/pkg/notify"
	"github.com/dmarroquin/freightops-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "freightops-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "freightops-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.GCP.ProjectID != "" {
		pubsubNotifier, err := notify.NewPubSubNotifier(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub notifier", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubNotifier.Close(); err != nil {
				logg.Error(ctx, "error closing pubsub notifier", err)
			}
		}()
		notifier = pubsubNotifier
	} else {
		logg.Warn(ctx, "GCP project not configured; domain events will be dropped")
	}

	commissionMetrics := metrics.NewCommissionMetrics(prometheus.DefaultRegisterer)

	policiesRepo := policies.NewRepository(dbClient.DB())
	policiesSvc, err := policies.NewService(policiesRepo, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to build policies service", err)
		os.Exit(1)
	}

	leadsRepo := leads.NewRepository(dbClient.DB())
	leadsSvc, err := leads.NewService(leadsRepo, dbClient, notifier, logg)
	if err != nil {
		logg.Error(ctx, "failed to build leads service", err)
		os.Exit(1)
	}

	commissionsRepo := commissions.NewRepository(dbClient.DB())
	runStore := commissions.NewRunStore(commissionsRepo, commissionMetrics)
	commissionsSvc, err := commissions.NewService(
		commissionsRepo, policiesSvc, runStore, commissions.SourceInboundDetector{}, commissionMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to build commissions service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.RouterParams{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Leads:       leadsSvc,
		Policies:    policiesSvc,
		Commissions: commissionsSvc,
		Metrics:     prometheus.DefaultGatherer,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "api server listening")
		serverErr <- server.ListenAndServe()
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case <-stop.Done():
		logg.Info(ctx, "shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}
