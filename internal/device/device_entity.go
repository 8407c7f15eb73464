package device

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistEntry memblokir sebuah device fingerprint, permanen atau sampai
// waktu tertentu. Fingerprint bersifat opaque — engine tidak peduli bagaimana
// collaborator menurunkannya.
type BlacklistEntry struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Fingerprint  string     `gorm:"column:fingerprint;type:varchar(100);not null;uniqueIndex:uq_blacklist_fingerprint"`
	IsPermanent  bool       `gorm:"column:is_permanent;not null;default:false"`
	BlockedUntil *time.Time `gorm:"column:blocked_until;type:timestamptz"`
	Reason       *string    `gorm:"column:reason;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (BlacklistEntry) TableName() string {
	return "device_blacklist"
}

// Active melaporkan apakah blokir masih berlaku pada saat now.
func (e *BlacklistEntry) Active(now time.Time) bool {
	if e.IsPermanent {
		return true
	}
	return e.BlockedUntil != nil && e.BlockedUntil.After(now)
}
