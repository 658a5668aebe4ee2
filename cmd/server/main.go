package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/panuwat/gacp-certification/internal/api"
	"github.com/panuwat/gacp-certification/internal/config"
	"github.com/panuwat/gacp-certification/internal/document"
	"github.com/panuwat/gacp-certification/internal/export"
	"github.com/panuwat/gacp-certification/internal/metrics"
	"github.com/panuwat/gacp-certification/internal/repository"
	"github.com/panuwat/gacp-certification/internal/worker"
	"github.com/panuwat/gacp-certification/internal/workflow"
	"github.com/panuwat/gacp-certification/pkg/database"
	"github.com/panuwat/gacp-certification/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting GACP certification workflow service",
		zap.Int("port", cfg.Server.Port))

	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	appRepo := repository.NewApplicationRepository(db.DB, logger)
	docRepo := repository.NewDocumentRepository(db.DB, logger)
	historyRepo := repository.NewHistoryRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)

	engine := workflow.NewEngine(db, appRepo, docRepo, historyRepo, paymentRepo, m, logger)

	verifier := document.NewVerifier(logger)
	exporter := export.NewRegistryExporter(cfg.Export.OutputDir, logger)

	manager := worker.NewManager(logger)
	manager.Register(worker.NewReviewIntake(worker.ReviewIntakeConfig{
		Interval:  cfg.Workflow.IntakeInterval,
		BatchSize: cfg.Workflow.IntakeBatchSize,
	}, appRepo, engine, m, logger))
	manager.Register(worker.NewExpirySweeper(worker.ExpirySweeperConfig{
		Interval:  cfg.Workflow.SweepInterval,
		BatchSize: cfg.Workflow.SweepBatchSize,
	}, appRepo, engine, m, logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.StartAll(ctx); err != nil {
		logger.Fatal("Failed to start workers", zap.Error(err))
	}

	handler := api.NewHandler(engine, appRepo, docRepo, historyRepo, paymentRepo, verifier, exporter, logger)
	router := api.NewRouter(handler, registry)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	logger.Info("HTTP server listening", zap.String("addr", server.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	manager.StopAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
