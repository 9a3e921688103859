package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/audit"
	"github.com/aegisshield/irregular-report/internal/auth"
	"github.com/aegisshield/irregular-report/internal/config"
	"github.com/aegisshield/irregular-report/internal/handlers"
	"github.com/aegisshield/irregular-report/internal/metrics"
	"github.com/aegisshield/irregular-report/internal/middleware"
	"github.com/aegisshield/irregular-report/internal/reporting"
	"github.com/aegisshield/irregular-report/internal/storage"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logger, err := cfg.InitLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting Irregular Report Service",
		zap.String("version", version),
		zap.String("build_time", buildTime),
		zap.String("git_commit", gitCommit),
		zap.String("environment", cfg.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Initialize audit trail
	auditLogger := audit.NewLogger(cfg.Audit, logger)
	if err := auditLogger.Start(ctx); err != nil {
		return fmt.Errorf("failed to start audit logger: %w", err)
	}

	// Initialize ticket store
	store, err := newTicketStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	reportEngine := reporting.NewReportEngine(cfg.Reporting, logger, collector, auditLogger)
	authService := auth.NewService(cfg.Auth)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Metrics(collector))

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	reportHandler := handlers.NewReportHandler(reportEngine, store, auditLogger, collector, handlers.Options{
		TicketTTL:    cfg.Reporting.TicketTTL,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}, logger)
	reportHandler.RegisterRoutes(router, middleware.Auth(authService))

	httpServer := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutting down Irregular Report Service...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("HTTP server failed", zap.Error(err))
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}
	if err := auditLogger.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop audit logger", zap.Error(err))
	}

	logger.Info("Irregular Report Service stopped")
	return nil
}

func newTicketStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.TicketStore, error) {
	if cfg.Redis.Host == "" {
		logger.Info("Redis not configured, keeping export tickets in memory")
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.NewRedisStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return store, nil
}
