package producer

import (
	"context"
	"time"

	"go-attendgate/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const drainBatchSize = 50

// MessageWriter dipenuhi oleh *kafkago.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ProcessOutboxEvents memompa antrian sync: setiap tick mengambil batch
// attendance event yang masih pending (atau failed yang sudah boleh dicoba
// lagi) dan mempublishnya ke Kafka. Event yang gagal ditandai failed dengan
// backoff, bukan dibuang.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("sync outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("sync outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainPendingBatch(ctx, repo, writer, log); err != nil {
				log.Error("drain sync outbox failed", zap.Error(err))
			}
		}
	}
}

func drainPendingBatch(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("draining pending sync events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish sync event failed",
				zap.String("outbox_id", event.ID),
				zap.String("attendance_id", event.AggregateID),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark sync event sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("sync event published",
			zap.String("outbox_id", event.ID),
			zap.String("attendance_id", event.AggregateID),
			zap.String("event_type", event.EventType),
		)
	}

	return nil
}
