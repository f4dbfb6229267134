package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openDatabaseFromEnv dials Postgres with the DB_* variables, retrying a few
// times so the process survives a database that is still booting.
func openDatabaseFromEnv() (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// awaitShutdown blocks until SIGINT or SIGTERM.
func awaitShutdown(logger *zap.Logger, component string) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down",
		zap.String("component", component),
		zap.String("signal", sig.String()),
	)
}
