package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go-attendgate/internal/attendance"
	"go-attendgate/internal/events"
	"go-attendgate/internal/messaging/kafka/consumer"
	"go-attendgate/internal/shared/connection"
	"go-attendgate/internal/sync"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer menjalankan sisi kirim sync: baca event dari Kafka, push ke
// sistem eksternal, catat attempt, dan perbarui sync status attendance.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	syncAPIURL := os.Getenv("SYNC_API_URL")
	if syncAPIURL == "" {
		return fmt.Errorf("SYNC_API_URL is required")
	}

	timeout := 30 * time.Second
	if v := os.Getenv("SYNC_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	syncClient := sync.NewClient(sync.ClientConfig{
		BaseURL: syncAPIURL,
		APIKey:  os.Getenv("SYNC_API_KEY"),
		Timeout: timeout,
	})
	attemptRepo := sync.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(sqlDB)
	dispatcher := sync.NewDispatcher(syncClient, attemptRepo, attendanceRepo, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.AttendanceSyncTopic,
		GroupID:        "attendgate-sync",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAttendanceSync(ctx, reader, dispatcher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
