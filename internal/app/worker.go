package app

import (
	"context"
	"os"
	"time"

	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultOutboxPollInterval = 3 * time.Second

// RunWorker drains the transactional outbox into Kafka until the process is
// told to stop.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := openDatabaseFromEnv()
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	broker, err := requireEnv("KAFKA_BROKER")
	if err != nil {
		return err
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(broker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	pollInterval := defaultOutboxPollInterval
	if raw := os.Getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logger.Warn("invalid OUTBOX_POLL_INTERVAL, using default",
				zap.String("value", raw),
				zap.Error(err),
			)
		} else {
			pollInterval = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, pollInterval)

	awaitShutdown(logger, "outbox-worker")
	cancel()
	return nil
}
