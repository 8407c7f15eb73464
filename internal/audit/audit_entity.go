package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry adalah jejak satu percobaan gating, sukses maupun gagal.
// Append-only: tidak pernah diubah atau dihapus oleh engine.
type Entry struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ICNumber      *string    `gorm:"column:ic_number;type:varchar(20);index"`
	EmployeeID    *uuid.UUID `gorm:"column:employee_id;type:uuid;index"`
	Fingerprint   string     `gorm:"column:fingerprint;type:varchar(100)"`
	IPAddress     *string    `gorm:"column:ip_address;type:varchar(45)"`
	Action        string     `gorm:"column:action;type:varchar(30);not null"`
	Success       bool       `gorm:"column:success;not null"`
	FailureReason *string    `gorm:"column:failure_reason;type:varchar(500)"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "audit_entries"
}
