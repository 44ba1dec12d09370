package grid

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryStep is a horizontal merit position. Step ordering is the ascending
// lexicographic order of Name; it is a position, not a stored attribute, so
// renaming or adding steps shifts every generated row.
type SalaryStep struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SalaryGridCell struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GradeID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_grade_step,unique"`
	StepID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_grade_step,unique"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GridCellRow is a cell joined with its step name for ordered reads.
type GridCellRow struct {
	ID       uuid.UUID
	GradeID  uuid.UUID
	StepID   uuid.UUID
	StepName string
	Amount   decimal.Decimal
}
