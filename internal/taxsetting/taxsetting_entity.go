package taxsetting

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryCLT = "CLT"
	CategoryPJ  = "PJ"
)

// TaxSetting is one statutory/overhead component (ex: INSS, FGTS). The sum of
// all values in a category is the aggregate rate applied to salary for that
// hiring regime. Category is an explicit column, never inferred from the key.
type TaxSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"size:128;not null;uniqueIndex"`
	Value     float64   `gorm:"type:numeric(6,2);not null"`
	Category  string    `gorm:"size:8;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
