package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-cargos-salarios/internal/events"
	"go-cargos-salarios/internal/messaging/kafka/consumer"
	"go-cargos-salarios/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer listens for rescore and grid-change events and invalidates
// the simulation cache accordingly.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	rescoredReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.JobRoleRescoredTopic,
		GroupID:        "cargos-salarios-simulation-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer rescoredReader.Close()

	gridReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.GridChangedTopic,
		GroupID:        "cargos-salarios-simulation-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer gridReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeJobRoleRescored(ctx, rescoredReader, rdb, logger)
	go consumer.ConsumeGridChanged(ctx, gridReader, rdb, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
