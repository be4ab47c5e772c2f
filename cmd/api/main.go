package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpadapter "taskhub/internal/adapter/http"
	"taskhub/internal/adapter/telemetry"
	"taskhub/pkg/config"
	"taskhub/pkg/logging"
	"taskhub/pkg/metrics"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))

	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := logging.New(cfg.Telemetry.ServiceName, cfg.Server.Environment)

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var appMetrics *metrics.AppMetrics

	if cfg.Telemetry.Enabled {
		container, err := telemetry.NewContainer(cfg.Telemetry, cfg.Server.Environment, logger)

		if err != nil {
			logger.Fatal("Failed to initialize telemetry", zap.Error(err))
		}

		defer container.Shutdown(context.Background())

		appMetrics = container.AppMetrics
	} else {
		appMetrics = metrics.NewAppMetrics(prometheus.NewRegistry())
	}

	appMetrics.StartSystemMetrics(ctx)

	if err := httpadapter.StartServer(ctx, cfg, logger, appMetrics); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
