package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/usecase"
	"github.com/Geeth0476/Vigilant-Backend/internal/domain/service"
	"github.com/Geeth0476/Vigilant-Backend/internal/infrastructure/config"
	"github.com/Geeth0476/Vigilant-Backend/internal/infrastructure/messaging"
	"github.com/Geeth0476/Vigilant-Backend/internal/infrastructure/postgres"
	grpcpresentation "github.com/Geeth0476/Vigilant-Backend/internal/presentation/grpc"
	"github.com/Geeth0476/Vigilant-Backend/internal/presentation/rest"
	"github.com/Geeth0476/Vigilant-Backend/pkg/auth"
	"github.com/Geeth0476/Vigilant-Backend/pkg/kafka"
	"github.com/Geeth0476/Vigilant-Backend/pkg/observability"
	pgsql "github.com/Geeth0476/Vigilant-Backend/pkg/postgres"
)

const migrationsDir = "file://internal/infrastructure/postgres/migrations"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting scan-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: "scan-service",
		Endpoint:    cfg.OTLPTarget,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(ctx)
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "scan-service",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(dbCtx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Apply schema migrations.
	if err := pgsql.RunMigrations(cfg.DatabaseURL, migrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// JWT verification, sharing the secret with the auth collaborator.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "vigilant",
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	deviceRepo := postgres.NewDeviceRepository(pool)
	sessionRepo := postgres.NewScanSessionRepository(pool)
	riskScoreRepo := postgres.NewDeviceRiskScoreRepository(pool)
	resultRepo := postgres.NewScanResultRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)

	aggregator := service.NewRiskAggregator()
	completionStore := postgres.NewScanCompletionStore(pool, aggregator)

	producer := kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
	defer producer.Close()
	eventPublisher := messaging.NewKafkaPublisher(producer, messaging.DefaultTopic, logger)

	// Wire use cases.
	startScanUC := usecase.NewStartScan(deviceRepo, sessionRepo)
	updateProgressUC := usecase.NewUpdateProgress(sessionRepo)
	completeScanUC := usecase.NewCompleteScan(completionStore, eventPublisher, logger)
	getScanStatusUC := usecase.NewGetScanStatus(sessionRepo)
	getLatestScanUC := usecase.NewGetLatestScan(deviceRepo, sessionRepo)
	getActiveScanUC := usecase.NewGetActiveScan(deviceRepo, sessionRepo)
	getDashboardUC := usecase.NewGetDashboard(deviceRepo, sessionRepo, riskScoreRepo, resultRepo, alertRepo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewScanServiceHandler(
		startScanUC,
		updateProgressUC,
		completeScanUC,
		getScanStatusUC,
		getLatestScanUC,
		getActiveScanUC,
		getDashboardUC,
		logger,
	)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, jwtService)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(pool, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("scan-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down scan-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("scan-service stopped")
}
