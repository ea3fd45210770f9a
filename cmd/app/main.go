package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"freight/cmd"
	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/metrics"
	"freight/internal/adapters/out/objectstore"
	"freight/internal/adapters/out/permissions"
	freightpg "freight/internal/adapters/out/postgres"
	"freight/internal/pkg/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, configs.Tracing, logger)
	if err != nil {
		log.Fatalf("Error initializing tracing: %v", err)
	}

	gormDB := mustOpenDatabase(configs)

	storage, err := objectstore.NewMinioStorage(ctx, configs.Minio)
	if err != nil {
		log.Fatalf("Error connecting to object storage: %v", err)
	}

	checker, err := permissions.NewStaticChecker(configs.Grants)
	if err != nil {
		log.Fatalf("Error parsing permission grants: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := freighthttp.NewHTTPMetrics(registry)
	if err != nil {
		log.Fatalf("Error registering HTTP metrics: %v", err)
	}
	transitions, err := metrics.NewStatusTransitions(registry)
	if err != nil {
		log.Fatalf("Error registering status metrics: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, storage, transitions, logger)

	jobManager := app.JobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	server := freighthttp.NewServer(app.HTTPHandlers(), checker, freighthttp.Options{
		Logger:        logger,
		Metrics:       httpMetrics,
		Gatherer:      registry,
		HealthCheck:   pingDatabase(gormDB),
		ChatEditGrace: configs.ChatEditGrace,
		ServiceName:   configs.Tracing.ServiceName,
	})
	startWebServer(ctx, server.Echo(), configs, logger)

	jobManager.StopAll()
	if err := shutdownTracing(context.Background()); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := freightpg.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

func pingDatabase(gormDB *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// startWebServer serves until ctx is cancelled, then drains in-flight
// requests for at most the configured shutdown timeout.
func startWebServer(ctx context.Context, e *echo.Echo, configs cmd.Config, logger *slog.Logger) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server stopped: %v", err)
		}
	}()
	logger.Info("http server started", "port", configs.HTTPPort)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}
