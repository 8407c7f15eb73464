package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-attendgate/internal/attendance"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	today   int64
	pending int64
	failed  int64
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	return nil
}
func (f *fakeAttendanceRepo) FindOpenByEmployeeAndDate(ctx context.Context, employeeID, date string, forUpdate bool) (*attendance.Attendance, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeAttendanceRepo) FindLatestByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeAttendanceRepo) FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) Close(ctx context.Context, a *attendance.Attendance) error { return nil }
func (f *fakeAttendanceRepo) CountByDate(ctx context.Context, date string) (int64, error) {
	return f.today, nil
}
func (f *fakeAttendanceRepo) CountBySyncStatus(ctx context.Context, syncStatus string) (int64, error) {
	if syncStatus == attendance.SyncStatusPending {
		return f.pending, nil
	}
	return f.failed, nil
}
func (f *fakeAttendanceRepo) OpenedByOtherEmployee(ctx context.Context, fingerprint, employeeID string, day time.Time) (bool, error) {
	return false, nil
}
func (f *fakeAttendanceRepo) UpdateSyncStatus(ctx context.Context, attendanceID, status string) error {
	return nil
}

func TestAttendanceStats_CacheMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := &fakeAttendanceRepo{today: 42, pending: 3, failed: 1}

	svc := NewService(repo, rdb, time.UTC).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	}

	mock.ExpectGet(statsCacheKey).RedisNil()
	mock.Regexp().ExpectSet(statsCacheKey, `.*"today_attendance_count":42.*`, statsCacheTTL).SetVal("OK")

	stats, err := svc.AttendanceStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TodayAttendanceCount)
	assert.Equal(t, int64(3), stats.PendingSyncCount)
	assert.Equal(t, int64(1), stats.FailedSyncCount)
	assert.Equal(t, "2025-06-02", stats.AttendanceDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceStats_CacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	// Repo dengan angka berbeda: kalau cache dipakai, angka repo tidak muncul.
	repo := &fakeAttendanceRepo{today: 999}

	cached, err := json.Marshal(Stats{Status: "ok", TodayAttendanceCount: 10})
	require.NoError(t, err)
	mock.ExpectGet(statsCacheKey).SetVal(string(cached))

	svc := NewService(repo, rdb, time.UTC)
	stats, err := svc.AttendanceStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TodayAttendanceCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
