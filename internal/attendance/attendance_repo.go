package attendance

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	// FindOpenByEmployeeAndDate mengambil record OPEN milik karyawan pada
	// tanggal tersebut. forUpdate menahan row lock sampai transaksi selesai.
	FindOpenByEmployeeAndDate(ctx context.Context, employeeID, date string, forUpdate bool) (*Attendance, error)
	FindLatestByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error)
	Close(ctx context.Context, a *Attendance) error
	CountByDate(ctx context.Context, date string) (int64, error)
	CountBySyncStatus(ctx context.Context, syncStatus string) (int64, error)

	// device.UsageLookup
	OpenedByOtherEmployee(ctx context.Context, fingerprint, employeeID string, day time.Time) (bool, error)
	// sync.StatusUpdater
	UpdateSyncStatus(ctx context.Context, attendanceID, status string) error
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

const attendanceColumns = `
	id::text,
	employee_id::text,
	to_char(attendance_date, 'YYYY-MM-DD'),
	clock_in,
	clock_in_lat,
	clock_in_lng,
	clock_out,
	clock_out_lat,
	clock_out_lng,
	device_fingerprint,
	device_info,
	ip_address,
	user_agent,
	verification_method,
	face_confidence,
	status,
	sync_status,
	created_at,
	updated_at
`

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	query := `
INSERT INTO attendances (
	id, employee_id, attendance_date, clock_in, clock_in_lat, clock_in_lng,
	device_fingerprint, device_info, ip_address, user_agent,
	verification_method, face_confidence, status, sync_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`
	_, err := r.execer().ExecContext(
		ctx, query,
		a.ID, a.EmployeeID, a.AttendanceDate, a.ClockIn, a.ClockInLatitude, a.ClockInLongitude,
		a.DeviceFingerprint, a.DeviceInfo, a.IPAddress, a.UserAgent,
		a.VerificationMethod, a.FaceConfidence, a.Status, a.SyncStatus,
	)
	return err
}

func (r *repository) FindOpenByEmployeeAndDate(ctx context.Context, employeeID, date string, forUpdate bool) (*Attendance, error) {
	query := `
SELECT ` + attendanceColumns + `
FROM attendances
WHERE employee_id = $1
	AND attendance_date = $2
	AND status = $3
ORDER BY clock_in DESC
LIMIT 1
`
	if forUpdate {
		query += " FOR UPDATE"
	}

	row := r.queryer().QueryRowContext(ctx, query, employeeID, date, StatusOpen)
	return scanAttendance(row)
}

func (r *repository) FindLatestByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error) {
	query := `
SELECT ` + attendanceColumns + `
FROM attendances
WHERE employee_id = $1
	AND attendance_date = $2
ORDER BY clock_in DESC
LIMIT 1
`
	row := r.queryer().QueryRowContext(ctx, query, employeeID, date)
	return scanAttendance(row)
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error) {
	query := `
SELECT ` + attendanceColumns + `
FROM attendances
WHERE employee_id = $1
ORDER BY clock_in DESC
LIMIT $2
`
	rows, err := r.queryer().QueryContext(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Attendance, 0, limit)
	for rows.Next() {
		a, err := scanAttendanceRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *a)
	}
	return records, rows.Err()
}

// Close menutup record OPEN. Guard status = OPEN di WHERE membuat dua
// clock-out konkuren tidak bisa sama-sama berhasil; yang kalah melihat
// sql.ErrNoRows.
func (r *repository) Close(ctx context.Context, a *Attendance) error {
	query := `
UPDATE attendances
SET
	clock_out = $2,
	clock_out_lat = $3,
	clock_out_lng = $4,
	status = $5,
	sync_status = $6,
	updated_at = NOW()
WHERE id = $1 AND status = $7
`
	res, err := r.execer().ExecContext(
		ctx, query,
		a.ID, a.ClockOut, a.ClockOutLatitude, a.ClockOutLongitude,
		StatusClosed, a.SyncStatus, StatusOpen,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) CountByDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.queryer().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendances WHERE attendance_date = $1`, date,
	).Scan(&count)
	return count, err
}

func (r *repository) CountBySyncStatus(ctx context.Context, syncStatus string) (int64, error) {
	var count int64
	err := r.queryer().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendances WHERE sync_status = $1`, syncStatus,
	).Scan(&count)
	return count, err
}

func (r *repository) OpenedByOtherEmployee(ctx context.Context, fingerprint, employeeID string, day time.Time) (bool, error) {
	var count int64
	err := r.queryer().QueryRowContext(ctx, `
SELECT COUNT(*)
FROM attendances
WHERE device_fingerprint = $1
	AND attendance_date = $2
	AND employee_id <> $3
`, fingerprint, day.Format("2006-01-02"), employeeID).Scan(&count)
	return count > 0, err
}

func (r *repository) UpdateSyncStatus(ctx context.Context, attendanceID, status string) error {
	_, err := r.execer().ExecContext(ctx, `
UPDATE attendances
SET sync_status = $2, updated_at = NOW()
WHERE id = $1
`, attendanceID, status)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row *sql.Row) (*Attendance, error) {
	return scanAttendanceRows(row)
}

func scanAttendanceRows(row rowScanner) (*Attendance, error) {
	var (
		a              Attendance
		id, employeeID string
		deviceInfo     sql.NullString
		ipAddress      sql.NullString
		userAgent      sql.NullString
		clockOut       sql.NullTime
		clockOutLat    sql.NullFloat64
		clockOutLng    sql.NullFloat64
		faceConfidence sql.NullFloat64
	)

	if err := row.Scan(
		&id,
		&employeeID,
		&a.AttendanceDate,
		&a.ClockIn,
		&a.ClockInLatitude,
		&a.ClockInLongitude,
		&clockOut,
		&clockOutLat,
		&clockOutLng,
		&a.DeviceFingerprint,
		&deviceInfo,
		&ipAddress,
		&userAgent,
		&a.VerificationMethod,
		&faceConfidence,
		&a.Status,
		&a.SyncStatus,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.ID = mustUUID(id)
	a.EmployeeID = mustUUID(employeeID)
	if clockOut.Valid {
		a.ClockOut = &clockOut.Time
	}
	if clockOutLat.Valid {
		a.ClockOutLatitude = &clockOutLat.Float64
	}
	if clockOutLng.Valid {
		a.ClockOutLongitude = &clockOutLng.Float64
	}
	if deviceInfo.Valid {
		a.DeviceInfo = &deviceInfo.String
	}
	if ipAddress.Valid {
		a.IPAddress = &ipAddress.String
	}
	if userAgent.Valid {
		a.UserAgent = &userAgent.String
	}
	if faceConfidence.Valid {
		a.FaceConfidence = &faceConfidence.Float64
	}
	return &a, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) queryer() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
