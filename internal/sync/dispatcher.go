package sync

import (
	"context"

	"go-attendgate/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusUpdater memperbarui kolom sync_status denormalized pada attendance
// record. Diimplementasikan oleh attendance repository; dispatcher tidak
// pernah menyentuh field lifecycle lain.
type StatusUpdater interface {
	UpdateSyncStatus(ctx context.Context, attendanceID, status string) error
}

// Dispatcher memproses satu event sync: push ke sistem eksternal, catat
// attempt-nya (berhasil atau tidak), lalu perbarui status denormalized.
// Kegagalan push tidak pernah dieskalasi ke jalur clock-in/clock-out.
type Dispatcher struct {
	client   Client
	attempts Repository
	status   StatusUpdater
	logger   *zap.Logger
}

func NewDispatcher(client Client, attempts Repository, status StatusUpdater, logger *zap.Logger) *Dispatcher {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	return &Dispatcher{
		client:   client,
		attempts: attempts,
		status:   status,
		logger:   l.Named("sync.dispatcher"),
	}
}

// Handle mengembalikan error hanya untuk kegagalan store (agar pesan bisa
// di-retry oleh consumer); hasil push remote apapun dianggap selesai.
func (d *Dispatcher) Handle(ctx context.Context, event events.AttendanceSyncRequestedEvent) error {
	attendanceID, err := uuid.Parse(event.AttendanceID)
	if err != nil {
		d.logger.Error("sync event carries invalid attendance id",
			zap.String("attendance_id", event.AttendanceID),
			zap.Error(err),
		)
		return nil // poison message, jangan di-retry
	}

	statusCode, body, pushErr := d.client.Push(ctx, event)

	outcome := AttemptStatusFailed
	if pushErr == nil && statusCode >= 200 && statusCode < 300 {
		outcome = AttemptStatusSuccess
	}

	var responseBody *string
	if pushErr != nil {
		msg := pushErr.Error()
		responseBody = &msg
	} else if len(body) > 0 {
		raw := string(body)
		responseBody = &raw
	}

	attempt := &Attempt{
		ID:           uuid.New(),
		AttendanceID: attendanceID,
		Action:       event.Action,
		Status:       outcome,
		ResponseBody: responseBody,
	}
	if err := d.attempts.Create(ctx, attempt); err != nil {
		return err
	}

	if err := d.status.UpdateSyncStatus(ctx, event.AttendanceID, outcome); err != nil {
		return err
	}

	if outcome == AttemptStatusSuccess {
		d.logger.Info("attendance synced",
			zap.String("attendance_id", event.AttendanceID),
			zap.String("action", event.Action),
		)
	} else {
		d.logger.Warn("attendance sync failed",
			zap.String("attendance_id", event.AttendanceID),
			zap.String("action", event.Action),
			zap.Int("status_code", statusCode),
			zap.Error(pushErr),
		)
	}

	return nil
}
