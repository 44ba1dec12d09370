package consumer

import (
	"context"
	"encoding/json"

	"go-cargos-salarios/internal/enquadramento"
	"go-cargos-salarios/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeGridChanged drops the cached simulation after any grid mutation —
// a global increase, a regenerated row or a single cell edit all move floors
// and ceilings the classification depends on.
func ConsumeGridChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.grid_changed")
	log.Info("grid changed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("grid changed consumer stopped")
				return
			}
			log.Error("fetch grid changed message failed", zap.Error(err))
			continue
		}

		var event events.GridChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode grid changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx, enquadramento.SimulationCacheKey).Err(); err != nil {
			log.Error("invalidate simulation cache failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit grid changed message failed", zap.Error(err))
			continue
		}

		log.Info("simulation cache invalidated",
			zap.String("event_type", event.EventType),
			zap.String("grade_id", event.GradeID),
			zap.Int("cells_affected", event.CellsAffected),
		)
	}
}
