package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/consortium-simulator/internal/config"
	"github.com/iwvelando/consortium-simulator/internal/history"
	"github.com/iwvelando/consortium-simulator/internal/server"
	"github.com/iwvelando/consortium-simulator/internal/tracing"
	"github.com/iwvelando/consortium-simulator/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, logger, cfg.Tracing, version)
	if err != nil {
		logger.Fatal("failed to set up tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("failed to flush traces",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	repo, closeRepo, err := openHistory(ctx, logger, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open simulation history",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer closeRepo()

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, cfg, repo, version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("listening on %s", cfg.Address),
			zap.String("op", "main"),
			zap.String("storage", repo.Storage()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-ctx.Done():
		logger.Info("shutting down",
			zap.String("op", "main"),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// openHistory selects Postgres when a database URL is configured and falls
// back to the in-memory store otherwise.
func openHistory(ctx context.Context, logger *zap.Logger, databaseURL string) (history.Repository, func(), error) {
	if databaseURL == "" {
		logger.Warn("no database configured, simulation history is kept in memory",
			zap.String("op", "main.openHistory"),
		)
		return history.NewMemory(), func() {}, nil
	}

	pool, err := history.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := history.NewPostgres(pool)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}
