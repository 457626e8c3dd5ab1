package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Advisor/internal/api"
	"github.com/MikeSquared-Agency/Advisor/internal/broker"
	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/hermes"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations and wizard sessions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	rec := newRecommender(cat)

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Broker
	b := broker.New(rec, hermesClient, broker.Options{
		TTL:           cfg.SessionTTL(),
		SweepInterval: cfg.SweepInterval(),
		MaxSessions:   cfg.Sessions.Max,
		CatalogSource: cfg.Catalog.Source,
	}, logger)
	b.SetLoader(func(ctx context.Context) (*catalog.Catalog, error) { return loadCatalog(ctx) })
	b.Start(ctx)
	defer b.Stop()
	logger.Info("broker started", "session_ttl", cfg.SessionTTL(), "max_sessions", cfg.Sessions.Max)

	// Catalog reloads requested over NATS
	b.SetupSubscriptions(ctx)

	// API server
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(b, cfg.Server.RateLimit, logger),
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}
