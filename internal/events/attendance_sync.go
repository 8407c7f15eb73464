package events

import "time"

const AttendanceSyncTopic = "attendance.sync.v1"

const (
	ActionClockIn  = "clock_in"
	ActionClockOut = "clock_out"
)

// AttendanceSyncRequestedEvent diminta setiap kali transisi attendance commit
// dan harus dicerminkan ke sistem eksternal. Key Kafka = AttendanceID sehingga
// attempt untuk record yang sama selalu FIFO.
type AttendanceSyncRequestedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	ICNumber     string    `json:"ic_number"`
	Action       string    `json:"action"`
	OccurredAt   time.Time `json:"occurred_at"`
}
