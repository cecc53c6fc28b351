package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Sehat-Backend/cmd/config"
	migration "Sehat-Backend/cmd/database/migrate"
	"Sehat-Backend/internal/utils"
	"Sehat-Backend/pkg/logger"
	"Sehat-Backend/pkg/tracer"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	utils.LoadConfig()

	zlog, err := logger.New(logger.Config{
		Level:  utils.GetConfigDefault("LOG_LEVEL", "info"),
		Format: utils.GetConfigDefault("LOG_FORMAT", "json"),
	})
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if err := run(zlog, *migrate || *migrateOnly, *migrateOnly); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(zlog *zap.Logger, runMigrations, migrateOnly bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(tracer.Config{
		Enabled:     utils.GetConfigBool("TRACING_ENABLED", false),
		ServiceName: "sehat-backend",
		Endpoint:    utils.GetConfigDefault("TRACING_ENDPOINT", "localhost:4318"),
		SampleRate:  utils.GetConfigFloat("TRACING_SAMPLE_RATE", 1.0),
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if runMigrations {
		if err := migration.Migrate(db, zlog); err != nil {
			return err
		}
		if migrateOnly {
			return nil
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := config.NewApp(ctx, db, zlog, reg)
	if err != nil {
		return err
	}

	addr := ":" + utils.GetConfigDefault("APP_PORT", "8080")
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("http server listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
