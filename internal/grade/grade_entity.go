package grade

import (
	"time"

	"github.com/google/uuid"
)

// SalaryGrade is a salary band defined by an inclusive point-score range.
type SalaryGrade struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null;uniqueIndex"`
	MinPoints float64   `gorm:"type:numeric(8,2);not null"`
	MaxPoints float64   `gorm:"type:numeric(8,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether points falls inside the band, both ends inclusive.
func (g SalaryGrade) Contains(points float64) bool {
	return points >= g.MinPoints && points <= g.MaxPoints
}
