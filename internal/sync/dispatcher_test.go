package sync

import (
	"context"
	"errors"
	"testing"

	"go-attendgate/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	status int
	body   []byte
	err    error
}

func (f *fakeClient) Push(ctx context.Context, event events.AttendanceSyncRequestedEvent) (int, []byte, error) {
	return f.status, f.body, f.err
}

type fakeAttemptRepo struct {
	attempts []*Attempt
	err      error
}

func (f *fakeAttemptRepo) Create(ctx context.Context, attempt *Attempt) error {
	if f.err != nil {
		return f.err
	}
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeAttemptRepo) ListByAttendance(ctx context.Context, attendanceID string) ([]Attempt, error) {
	return nil, nil
}

type fakeStatusUpdater struct {
	updates map[string]string
	err     error
}

func (f *fakeStatusUpdater) UpdateSyncStatus(ctx context.Context, attendanceID, status string) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[string]string{}
	}
	f.updates[attendanceID] = status
	return nil
}

func TestDispatcher_Success(t *testing.T) {
	attempts := &fakeAttemptRepo{}
	status := &fakeStatusUpdater{}
	d := NewDispatcher(&fakeClient{status: 200, body: []byte(`{"ok":true}`)}, attempts, status, nil)

	event := testEvent()
	err := d.Handle(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, attempts.attempts, 1)
	assert.Equal(t, AttemptStatusSuccess, attempts.attempts[0].Status)
	require.NotNil(t, attempts.attempts[0].ResponseBody)
	assert.Equal(t, `{"ok":true}`, *attempts.attempts[0].ResponseBody)
	assert.Equal(t, AttemptStatusSuccess, status.updates[event.AttendanceID])
}

func TestDispatcher_RemoteRejects(t *testing.T) {
	attempts := &fakeAttemptRepo{}
	status := &fakeStatusUpdater{}
	d := NewDispatcher(&fakeClient{status: 500, body: []byte("boom")}, attempts, status, nil)

	event := testEvent()
	err := d.Handle(context.Background(), event)

	// Push gagal tetap selesai tanpa error: attempt FAILED tercatat.
	require.NoError(t, err)
	require.Len(t, attempts.attempts, 1)
	assert.Equal(t, AttemptStatusFailed, attempts.attempts[0].Status)
	assert.Equal(t, AttemptStatusFailed, status.updates[event.AttendanceID])
}

func TestDispatcher_TransportError(t *testing.T) {
	attempts := &fakeAttemptRepo{}
	status := &fakeStatusUpdater{}
	d := NewDispatcher(&fakeClient{err: errors.New("dial tcp: timeout")}, attempts, status, nil)

	err := d.Handle(context.Background(), testEvent())

	require.NoError(t, err)
	require.Len(t, attempts.attempts, 1)
	assert.Equal(t, AttemptStatusFailed, attempts.attempts[0].Status)
	require.NotNil(t, attempts.attempts[0].ResponseBody)
	assert.Contains(t, *attempts.attempts[0].ResponseBody, "timeout")
}

func TestDispatcher_StoreErrorPropagates(t *testing.T) {
	attempts := &fakeAttemptRepo{err: errors.New("db down")}
	d := NewDispatcher(&fakeClient{status: 200}, attempts, &fakeStatusUpdater{}, nil)

	err := d.Handle(context.Background(), testEvent())
	assert.Error(t, err)
}

func TestDispatcher_PoisonMessage(t *testing.T) {
	attempts := &fakeAttemptRepo{}
	d := NewDispatcher(&fakeClient{status: 200}, attempts, &fakeStatusUpdater{}, nil)

	event := testEvent()
	event.AttendanceID = "not-a-uuid"

	// ID rusak tidak boleh membuat consumer retry selamanya.
	err := d.Handle(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, attempts.attempts)
}
