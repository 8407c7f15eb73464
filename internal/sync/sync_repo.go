package sync

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=sync_repo.go -destination=mock/sync_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, attempt *Attempt) error
	ListByAttendance(ctx context.Context, attendanceID string) ([]Attempt, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, attempt *Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *repository) ListByAttendance(ctx context.Context, attendanceID string) ([]Attempt, error) {
	var rows []Attempt
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
