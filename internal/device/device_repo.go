package device

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=device_repo.go -destination=mock/device_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *BlacklistEntry) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]BlacklistEntry, error)
	FindActiveBlock(ctx context.Context, fingerprint string, now time.Time) (*BlacklistEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *BlacklistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&BlacklistEntry{}).Error
}

func (r *repository) FindAll(ctx context.Context) ([]BlacklistEntry, error) {
	var rows []BlacklistEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveBlock(ctx context.Context, fingerprint string, now time.Time) (*BlacklistEntry, error) {
	var entry BlacklistEntry
	err := r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		Where("is_permanent = TRUE OR blocked_until > ?", now).
		First(&entry).Error
	return &entry, err
}
