package device

import (
	"context"
	"errors"
	"time"

	deviceerrors "go-attendgate/internal/device/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UsageLookup menjawab apakah sebuah fingerprint sudah dipakai membuka
// attendance oleh karyawan LAIN pada hari kalender yang sama. Diimplementasikan
// oleh attendance repository; didefinisikan di sini agar dependensi searah.
type UsageLookup interface {
	OpenedByOtherEmployee(ctx context.Context, fingerprint, employeeID string, day time.Time) (bool, error)
}

//go:generate mockgen -source=policy.go -destination=mock/policy_mock.go -package=mock
type Policy interface {
	AuthorizeClockIn(ctx context.Context, fingerprint, employeeID string, day time.Time) error
	AuthorizeClockOut(ctx context.Context, fingerprint, clockInFingerprint string) error
}

type policy struct {
	blacklist   Repository
	usage       UsageLookup
	exclusivity bool
	logger      *zap.Logger
}

// NewPolicy membuat device policy. exclusivity mengikuti konfigurasi
// deployment (DEVICE_EXCLUSIVITY): saat aktif, satu device hanya boleh dipakai
// satu karyawan per hari kalender.
func NewPolicy(blacklist Repository, usage UsageLookup, exclusivity bool) Policy {
	return &policy{
		blacklist:   blacklist,
		usage:       usage,
		exclusivity: exclusivity,
		logger:      zap.L().Named("device.policy"),
	}
}

func (p *policy) AuthorizeClockIn(ctx context.Context, fingerprint, employeeID string, day time.Time) error {
	if fingerprint == "" {
		return deviceerrors.ErrMissingFingerprint
	}

	if err := p.checkBlacklist(ctx, fingerprint); err != nil {
		return err
	}

	if !p.exclusivity {
		return nil
	}

	used, err := p.usage.OpenedByOtherEmployee(ctx, fingerprint, employeeID, day)
	if err != nil {
		return err
	}
	if used {
		p.logger.Warn("device already used by another employee today",
			zap.String("fingerprint", fingerprint),
			zap.String("employee_id", employeeID),
		)
		return deviceerrors.ErrDeviceAlreadyUsedToday
	}

	return nil
}

func (p *policy) AuthorizeClockOut(ctx context.Context, fingerprint, clockInFingerprint string) error {
	if fingerprint == "" {
		return deviceerrors.ErrMissingFingerprint
	}

	if err := p.checkBlacklist(ctx, fingerprint); err != nil {
		return err
	}

	// Clock out harus dari device yang sama dengan clock in.
	if fingerprint != clockInFingerprint {
		return deviceerrors.ErrDeviceMismatch
	}

	return nil
}

func (p *policy) checkBlacklist(ctx context.Context, fingerprint string) error {
	entry, err := p.blacklist.FindActiveBlock(ctx, fingerprint, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if entry != nil {
		return deviceerrors.ErrDeviceBlocked
	}
	return nil
}
