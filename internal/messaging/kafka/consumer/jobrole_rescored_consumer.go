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

// ConsumeJobRoleRescored drops the cached simulation whenever a job role is
// rescored, so the next enquadramento read reflects the new classification.
func ConsumeJobRoleRescored(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.jobrole_rescored")
	log.Info("job role rescored consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("job role rescored consumer stopped")
				return
			}
			log.Error("fetch job role rescored message failed", zap.Error(err))
			continue
		}

		var event events.JobRoleRescoredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode jobrole_rescored event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx, enquadramento.SimulationCacheKey).Err(); err != nil {
			log.Error("invalidate simulation cache failed",
				zap.String("job_role_id", event.JobRoleID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit job role rescored message failed", zap.Error(err))
			continue
		}

		log.Info("simulation cache invalidated",
			zap.String("job_role_id", event.JobRoleID),
			zap.Float64("total_points", event.TotalPoints),
		)
	}
}
