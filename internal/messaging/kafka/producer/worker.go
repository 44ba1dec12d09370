package producer

import (
	"context"
	"time"

	"go-cargos-salarios/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50

	// delivered rows are kept for a day so a misbehaving consumer can still
	// be debugged against the original payloads
	sentRetention = 24 * time.Hour
	pruneEvery    = 100
)

// Worker drains the transactional outbox into kafka on a fixed poll interval
// and periodically prunes delivered rows.
type Worker struct {
	repo      kafka.OutboxRepository
	writer    *kafkago.Writer
	logger    *zap.Logger
	interval  time.Duration
	batchSize int
	ticks     int
}

func NewWorker(repo kafka.OutboxRepository, writer *kafkago.Writer, logger *zap.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Worker{
		repo:      repo,
		writer:    writer,
		logger:    logger.Named("kafka.producer.worker"),
		interval:  interval,
		batchSize: defaultBatchSize,
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.drainOnce(ctx); err != nil {
				w.logger.Error("drain outbox failed", zap.Error(err))
			}
			w.ticks++
			if w.ticks%pruneEvery == 0 {
				w.pruneSent(ctx)
			}
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) error {
	events, err := w.repo.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	w.logger.Info("publishing pending outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, w.writer, event); err != nil {
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}

func (w *Worker) pruneSent(ctx context.Context) {
	deleted, err := w.repo.DeleteSentBefore(ctx, time.Now().Add(-sentRetention))
	if err != nil {
		w.logger.Error("prune sent outbox rows failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		w.logger.Info("pruned sent outbox rows", zap.Int64("deleted", deleted))
	}
}
