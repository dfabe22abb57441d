package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/database/postgres"
	database "github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite"
	appTelemetry "github.com/Manni1403/taskboard-assessment/internal/adapter/telemetry"
	coreTelemetry "github.com/Manni1403/taskboard-assessment/internal/core/telemetry"
	"github.com/Manni1403/taskboard-assessment/pkg/config"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

func StartServer(metrics *appTelemetry.AppMetrics, logger *logging.Logger) error {
	return StartServerWithConfig(metrics, logger, config.Load())
}

func StartServerWithConfig(metrics *appTelemetry.AppMetrics, logger *logging.Logger, cfg *config.AppConfig) error {
	probe := coreTelemetry.NewOTELProbe(slog.Default())

	var container *Container

	// DATABASE_URL selects postgres; the default is a local sqlite file.
	if os.Getenv("DATABASE_URL") != "" {
		db, err := postgres.NewDB(context.Background())
		if err != nil {
			return err
		}
		defer db.Close()

		container = NewPostgresContainer(db, logger, probe)
	} else {
		db, err := database.NewDB()
		if err != nil {
			return err
		}
		defer db.Close()

		container = NewContainer(db, logger, probe)
	}

	router := SetupRouterWithConfig(HandlersConfig{
		AuthHandler: container.AuthHandler,
		TodoHandler: container.TodoHandler,
	}, metrics, logger, cfg)

	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"cache_enabled", cfg.CacheEnabled)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
		return err
	}

	return nil
}
