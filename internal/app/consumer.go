package app

import (
	"context"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	broker, err := requireEnv("KAFKA_BROKER")
	if err != nil {
		return err
	}

	mailer := notification.NewMailerFromEnv(logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          events.LeaveDecisionTopic,
		GroupID:        "go-leave-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveDecisions(ctx, reader, mailer, logger)

	awaitShutdown(logger, "notification-consumer")
	cancel()
	return nil
}
