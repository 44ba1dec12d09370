package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetPlan struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Year      int              `gorm:"not null;uniqueIndex"`
	Items     []BudgetPlanItem `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BudgetPlanItem is a monthly target per department: money and headcount.
type BudgetPlanItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlanID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_plan_department,priority:1"`
	Department       string          `gorm:"size:255;not null;uniqueIndex:idx_plan_department,priority:2"`
	PlannedBudget    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PlannedHeadcount int             `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
