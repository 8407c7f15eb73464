package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string         `gorm:"column:employee_code;type:varchar(30);not null;uniqueIndex:uq_employee_code"`
	ICNumber     string         `gorm:"column:ic_number;type:varchar(20);not null;uniqueIndex:uq_employee_ic"`
	FullName     string         `gorm:"column:full_name;type:varchar(150);not null"`
	Department   *string        `gorm:"column:department;type:varchar(100)"`
	Position     *string        `gorm:"column:position;type:varchar(100)"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(100);not null"`
	Role         string         `gorm:"column:role;type:varchar(20);not null;default:'employee'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
