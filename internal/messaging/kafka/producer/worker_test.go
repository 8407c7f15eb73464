package producer

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-attendgate/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	listErr error
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, f.listErr
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	err      error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func syncEvent(id, attendanceID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		AggregateType: "attendance",
		AggregateID:   attendanceID,
		EventType:     "attendance.sync.requested",
		Topic:         "attendance.sync.v1",
		Payload:       []byte(`{"attendance_id":"` + attendanceID + `"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestDrainPendingBatch_PublishesAndMarksSent(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{
		syncEvent("ob-1", "att-1"),
		syncEvent("ob-2", "att-2"),
	}}
	writer := &fakeWriter{}

	err := drainPendingBatch(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"ob-1", "ob-2"}, repo.sent)
	assert.Empty(t, repo.failed)

	// Message key = attendance ID, supaya mirror per record berurutan.
	require.Len(t, writer.messages, 2)
	assert.Equal(t, "attendance.sync.v1", writer.messages[0].Topic)
	assert.Equal(t, []byte("att-1"), writer.messages[0].Key)
}

func TestDrainPendingBatch_BrokerDownMarksFailed(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{syncEvent("ob-1", "att-1")}}
	writer := &fakeWriter{err: errors.New("broker unreachable")}

	err := drainPendingBatch(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Empty(t, repo.sent)
	assert.Equal(t, "broker unreachable", repo.failed["ob-1"])
}

func TestDrainPendingBatch_ListErrorPropagates(t *testing.T) {
	repo := &fakeOutboxRepo{listErr: errors.New("store down")}

	err := drainPendingBatch(context.Background(), repo, &fakeWriter{}, zap.NewNop())
	assert.Error(t, err)
}
