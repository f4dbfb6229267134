package producer

import (
	"context"
	"time"

	"go-leave/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const drainBatchSize = 50

// ProcessOutboxEvents polls the outbox table and publishes pending events
// until the context is cancelled. The first drain runs immediately so a
// restart does not wait a full interval to flush a backlog.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if err := drainPending(ctx, repo, writer, log); err != nil {
			log.Error("drain outbox failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func drainPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	logger.Info("draining outbox", zap.Int("count", len(events)))

	for _, event := range events {
		dispatch(ctx, repo, writer, logger, event)
	}
	return nil
}

// dispatch publishes a single event and records the outcome. A publish
// failure marks the row failed so the next poll retries it after backoff.
func dispatch(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	event kafka.OutboxEvent,
) {
	fields := []zap.Field{
		zap.String("outbox_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.String("topic", event.Topic),
	}

	if err := publishEvent(ctx, writer, event); err != nil {
		logger.Error("publish failed", append(fields, zap.Error(err))...)
		_ = repo.MarkFailed(ctx, event.ID, err.Error())
		return
	}

	if err := repo.MarkSent(ctx, event.ID); err != nil {
		logger.Error("mark sent failed", append(fields, zap.Error(err))...)
		return
	}

	logger.Debug("outbox event sent", fields...)
}
