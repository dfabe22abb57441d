package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "github.com/Manni1403/taskboard-assessment/internal/adapter/http"
	"github.com/Manni1403/taskboard-assessment/internal/adapter/telemetry"
	"github.com/Manni1403/taskboard-assessment/pkg/config"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	logger, err := logging.New("taskboard")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.Init(telemetry.Config{
		ServiceName:    "taskboard",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if os.Getenv("GIN_MODE") == "release" {
			cfg.Environment = "production"
		}

		if err := api.StartServerWithConfig(metrics, logger, cfg); err != nil {
			log.Fatal("Server error:", err)
		}
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
