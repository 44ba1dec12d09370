package benefit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeFixed      = "FIXED"
	TypePercentage = "PERCENTAGE"
)

type Benefit struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:255;not null;uniqueIndex"`
	Type      string          `gorm:"size:16;not null"`
	Value     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cost is the only place the FIXED/PERCENTAGE branching lives. FIXED
// contributes its value verbatim; PERCENTAGE contributes value% of salary.
func (b Benefit) Cost(salary decimal.Decimal) decimal.Decimal {
	if b.Type == TypePercentage {
		return salary.Mul(b.Value).Div(decimal.NewFromInt(100))
	}
	return b.Value
}
