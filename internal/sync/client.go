package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-attendgate/internal/events"
)

// Client mengirim satu event attendance ke sistem eksternal yang otoritatif.
//
//go:generate mockgen -source=client.go -destination=mock/client_mock.go -package=mock
type Client interface {
	Push(ctx context.Context, event events.AttendanceSyncRequestedEvent) (statusCode int, body []byte, err error)
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type httpClient struct {
	cfg  ClientConfig
	http *http.Client
}

func NewClient(cfg ClientConfig) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type pushPayload struct {
	AttendanceID string `json:"attendance_id"`
	EmployeeIC   string `json:"employee_ic"`
	EmployeeID   string `json:"employee_id"`
	Action       string `json:"action"`
	Timestamp    string `json:"timestamp"`
}

func (c *httpClient) Push(ctx context.Context, event events.AttendanceSyncRequestedEvent) (int, []byte, error) {
	payload := pushPayload{
		AttendanceID: event.AttendanceID,
		EmployeeIC:   event.ICNumber,
		EmployeeID:   event.EmployeeCode,
		Action:       event.Action,
		Timestamp:    event.OccurredAt.Format("2006-01-02 15:04:05"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("push attendance sync: %w", err)
	}
	defer resp.Body.Close()

	// Body mentah selalu disimpan untuk audit, berhasil maupun tidak.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, respBody, nil
}
