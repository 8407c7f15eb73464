package sync

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttemptStatusSuccess = "SUCCESS"
	AttemptStatusFailed  = "FAILED"
)

// Attempt adalah satu percobaan mirror ke sistem eksternal. Append-only;
// sync status pada attendance record selalu mengikuti attempt terakhir.
type Attempt struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;not null;index"`
	Action       string    `gorm:"column:action;type:varchar(20);not null"`
	Status       string    `gorm:"column:status;type:varchar(20);not null"`
	ResponseBody *string   `gorm:"column:response_body;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Attempt) TableName() string {
	return "sync_attempts"
}
