package consumer

import (
	"context"
	"encoding/json"
	"time"

	"school-admin/internal/events"
	"school-admin/internal/ptobalance"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeInstructorLifecycle seeds the current-year balance snapshot
// for every freshly created instructor. Synchronize upserts, so a
// redelivered event converges to the same snapshot.
func ConsumeInstructorLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	balanceService ptobalance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.instructor_lifecycle")
	log.Info("instructor lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("instructor lifecycle consumer stopped")
				return
			}
			log.Error("fetch instructor lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.InstructorCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode instructor_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		year := time.Now().UTC().Year()
		_, err = balanceService.Synchronize(ctx, event.SchoolID, event.InstructorID, year)
		if err != nil {
			log.Error("seed balance snapshot failed",
				zap.String("instructor_id", event.InstructorID),
				zap.String("school_id", event.SchoolID),
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit instructor lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("balance snapshot seeded from instructor_created event",
			zap.String("instructor_id", event.InstructorID),
			zap.String("school_id", event.SchoolID),
			zap.Int("year", year),
		)
	}
}
