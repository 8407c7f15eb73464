package attendance

import "time"

type ClockInRequest struct {
	Latitude          *float64 `json:"latitude" binding:"required"`
	Longitude         *float64 `json:"longitude" binding:"required"`
	AccuracyMeters    *float64 `json:"accuracy_meters"`
	DeviceFingerprint string   `json:"device_fingerprint" binding:"required"`
	DeviceInfo        *string  `json:"device_info"`

	// Diisi handler: identitas dari klaim JWT, sisanya dari request HTTP.
	// ICNumber hanya dipakai jalur verify (kiosk, belum punya sesi).
	EmployeeID string  `json:"-"`
	ICNumber   string  `json:"-"`
	IPAddress  *string `json:"-"`
	UserAgent  *string `json:"-"`
}

type VerifyClockInRequest struct {
	ICNumber          string   `json:"ic_number" binding:"required"`
	Latitude          *float64 `json:"latitude" binding:"required"`
	Longitude         *float64 `json:"longitude" binding:"required"`
	AccuracyMeters    *float64 `json:"accuracy_meters"`
	DeviceFingerprint string   `json:"device_fingerprint" binding:"required"`
	DeviceInfo        *string  `json:"device_info"`
	FaceConfidence    *float64 `json:"face_confidence" binding:"required"`

	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

type ClockOutRequest struct {
	Latitude          *float64 `json:"latitude" binding:"required"`
	Longitude         *float64 `json:"longitude" binding:"required"`
	DeviceFingerprint string   `json:"device_fingerprint" binding:"required"`

	EmployeeID string  `json:"-"`
	IPAddress  *string `json:"-"`
	UserAgent  *string `json:"-"`
}

type AttendanceResponse struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	EmployeeCode       string     `json:"employee_code,omitempty"`
	FullName           string     `json:"full_name,omitempty"`
	AttendanceDate     string     `json:"attendance_date"`
	ClockIn            time.Time  `json:"clock_in"`
	ClockOut           *time.Time `json:"clock_out,omitempty"`
	VerificationMethod string     `json:"verification_method"`
	Status             string     `json:"status"`
	SyncStatus         string     `json:"sync_status"`
	DistanceMeters     float64    `json:"distance_meters"`
	SessionToken       string     `json:"session_token,omitempty"`
}

type ClockOutResponse struct {
	AttendanceResponse
	WorkingDuration WorkingDuration `json:"working_duration"`
}

// StatusResponse menjawab "di state mana karyawan ini sekarang".
type StatusResponse struct {
	State           string              `json:"state"`
	AttendanceDate  string              `json:"attendance_date"`
	Attendance      *AttendanceResponse `json:"attendance,omitempty"`
	WorkingDuration *WorkingDuration    `json:"working_duration,omitempty"`
}

type HistoryItem struct {
	ID              string           `json:"id"`
	AttendanceDate  string           `json:"attendance_date"`
	ClockIn         time.Time        `json:"clock_in"`
	ClockOut        *time.Time       `json:"clock_out,omitempty"`
	Status          string           `json:"status"`
	SyncStatus      string           `json:"sync_status"`
	WorkingDuration *WorkingDuration `json:"working_duration,omitempty"`
}

func mapToResponse(a *Attendance, distance float64) AttendanceResponse {
	return AttendanceResponse{
		ID:                 a.ID.String(),
		EmployeeID:         a.EmployeeID.String(),
		AttendanceDate:     a.AttendanceDate,
		ClockIn:            a.ClockIn,
		ClockOut:           a.ClockOut,
		VerificationMethod: a.VerificationMethod,
		Status:             a.Status,
		SyncStatus:         a.SyncStatus,
		DistanceMeters:     distance,
	}
}

func mapToHistoryItem(a Attendance) HistoryItem {
	item := HistoryItem{
		ID:             a.ID.String(),
		AttendanceDate: a.AttendanceDate,
		ClockIn:        a.ClockIn,
		ClockOut:       a.ClockOut,
		Status:         a.Status,
		SyncStatus:     a.SyncStatus,
	}
	if a.ClockOut != nil {
		d := NewWorkingDuration(a.ClockIn, *a.ClockOut)
		item.WorkingDuration = &d
	}
	return item
}
