package consumer

import (
	"context"
	"encoding/json"

	"go-attendgate/internal/events"
	"go-attendgate/internal/sync"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeAttendanceSync(
	ctx context.Context,
	reader *kafkago.Reader,
	dispatcher *sync.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_sync")
	log.Info("attendance sync consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance sync consumer stopped")
				return
			}
			log.Error("fetch attendance sync message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceSyncRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance sync event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := dispatcher.Handle(ctx, event); err != nil {
			// Store error: biarkan message tidak di-commit agar di-retry.
			log.Error("dispatch attendance sync failed",
				zap.String("attendance_id", event.AttendanceID),
				zap.String("action", event.Action),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance sync message failed", zap.Error(err))
			continue
		}
	}
}
