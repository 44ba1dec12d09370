package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-cargos-salarios/internal/benefit"
)

const (
	HiringTypeCLT = "CLT"
	HiringTypePJ  = "PJ"
)

// Employee carries the authored salary and hiring regime. Benefit links are a
// plain many-to-many; the definitions belong to the benefit catalog.
type Employee struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name       string            `gorm:"size:255;not null"`
	Salary     decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	HiringType string            `gorm:"size:8;not null"`
	JobRoleID  *uuid.UUID        `gorm:"type:uuid;index"`
	Benefits   []benefit.Benefit `gorm:"many2many:employee_benefits"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
