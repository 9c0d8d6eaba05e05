package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpserver "taskapp/internal/adapter/http"
	"taskapp/pkg/config"

	"go.uber.org/zap"
)

const serviceName = "taskapp"

func main() {
	ctx := context.Background()

	cfg := config.Load()

	logger, err := config.NewAppLogger(serviceName)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	telemetry, err := config.InitTelemetry(config.TelemetryConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := config.NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	server, err := httpserver.NewServer(cfg, metrics, logger)

	if err != nil {
		logger.Logger.Fatal("Failed to start server", zap.Error(err))
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Logger.Fatal("Server failed", zap.Error(err))
		}
	case <-c:
		logger.Logger.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Shutdown error", zap.Error(err))
		}
	}
}
