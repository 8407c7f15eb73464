package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle status satu attendance record.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Status mirror ke sistem eksternal (mengikuti attempt terakhir).
const (
	SyncStatusNone    = "NONE"
	SyncStatusPending = "PENDING"
	SyncStatusSuccess = "SUCCESS"
	SyncStatusFailed  = "FAILED"
)

// Metode verifikasi saat clock in.
const (
	VerificationManual   = "manual"
	VerificationFaceScan = "face_scan"
)

// State mesin status per (karyawan, hari).
const (
	StateNotClockedIn = "NOT_CLOCKED_IN"
	StateClockedIn    = "CLOCKED_IN"
	StateClockedOut   = "CLOCKED_OUT"
)

// Attendance adalah satu baris per clock-in. Invariant: untuk satu karyawan
// dan satu tanggal kalender, paling banyak satu record OPEN — dijaga oleh
// partial unique index uq_attendance_open_day dan SELECT ... FOR UPDATE.
type Attendance struct {
	ID                 uuid.UUID
	EmployeeID         uuid.UUID
	AttendanceDate     string // YYYY-MM-DD pada timezone deployment
	ClockIn            time.Time
	ClockInLatitude    float64
	ClockInLongitude   float64
	ClockOut           *time.Time
	ClockOutLatitude   *float64
	ClockOutLongitude  *float64
	DeviceFingerprint  string
	DeviceInfo         *string
	IPAddress          *string
	UserAgent          *string
	VerificationMethod string
	FaceConfidence     *float64
	Status             string
	SyncStatus         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// WorkingDuration adalah durasi kerja jam + sisa menit, dipotong ke bawah.
type WorkingDuration struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

func NewWorkingDuration(clockIn, clockOut time.Time) WorkingDuration {
	total := int(clockOut.Sub(clockIn).Minutes())
	if total < 0 {
		total = 0
	}
	return WorkingDuration{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
	}
}
