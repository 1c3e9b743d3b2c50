package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/finrecon-service/internal/pkg/logging"
	"github.com/light-bringer/finrecon-service/internal/services"
)

func main() {
	logger := logging.FromEnv()
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx := context.Background()

	config := loadConfig()

	logger.Info("starting reconciliation service",
		zap.String("spanner_db", config.SpannerDB),
		zap.String("http_port", config.HTTPPort))

	serviceOpts, err := services.NewServiceOptions(ctx, config.SpannerDB, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	httpServer := &http.Server{
		Addr:         ":" + config.HTTPPort,
		Handler:      serviceOpts.Handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	SpannerDB string
	HTTPPort  string
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		// Default for local development with emulator
		spannerDB = "projects/test-project/instances/dev-instance/databases/finrecon-db"
	}

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	return Config{
		SpannerDB: spannerDB,
		HTTPPort:  httpPort,
	}
}
