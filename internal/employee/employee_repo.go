package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindActiveByID(ctx context.Context, id string) (*Employee, error)
	FindActiveByICNumber(ctx context.Context, icNumber string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindActiveByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("is_active = TRUE").
		First(&empl).Error
	return &empl, err
}

func (r *repository) FindActiveByICNumber(ctx context.Context, icNumber string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("ic_number = ?", icNumber).
		Where("is_active = TRUE").
		First(&empl).Error
	return &empl, err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("employee_code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}
