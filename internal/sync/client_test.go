package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-attendgate/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() events.AttendanceSyncRequestedEvent {
	return events.AttendanceSyncRequestedEvent{
		EventType:    "attendance.sync.requested",
		AttendanceID: "0b0f7a52-4b4e-4c76-9d3f-4f0a8c3bb001",
		EmployeeID:   "0b0f7a52-4b4e-4c76-9d3f-4f0a8c3bb002",
		EmployeeCode: "EMP-001",
		ICNumber:     "900101-14-5678",
		Action:       events.ActionClockIn,
		OccurredAt:   time.Date(2025, 6, 2, 9, 5, 30, 0, time.UTC),
	}
}

func TestClient_Push(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"result":"recorded"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "api-key-123"})

	status, body, err := client.Push(context.Background(), testEvent())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"result":"recorded"}`, string(body))
	assert.Equal(t, "Bearer api-key-123", gotAuth)

	// Payload memakai employee code di field employee_id dan timestamp tanpa zona.
	assert.Equal(t, "EMP-001", gotPayload["employee_id"])
	assert.Equal(t, "900101-14-5678", gotPayload["employee_ic"])
	assert.Equal(t, "clock_in", gotPayload["action"])
	assert.Equal(t, "2025-06-02 09:05:30", gotPayload["timestamp"])
}

func TestClient_Push_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "api-key-123"})

	status, body, err := client.Push(context.Background(), testEvent())

	// Status non-2xx bukan error transport: body tetap dikembalikan untuk attempt log.
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "upstream down", string(body))
}

func TestClient_Push_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // langsung matikan

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second})

	_, _, err := client.Push(context.Background(), testEvent())
	assert.Error(t, err)
}
