package jobrole

import (
	"time"

	"github.com/google/uuid"
)

// JobRole caches TotalPoints and GradeID, both derived from the score set.
// They are recomputed inside the same transaction as every score mutation and
// are never authored independently.
type JobRole struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"size:255;not null"`
	Department  string     `gorm:"size:255"`
	TotalPoints float64    `gorm:"type:numeric(8,2);not null;default:0"`
	GradeID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobScore links a job role to the chosen level of one factor. The scorer's
// full-overwrite semantics guarantee at most one score per (role, factor).
type JobScore struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobRoleID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FactorLevelID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

// ScoredLevel is the read model for a factor level joined with its factor's
// weight, enough to price one score line.
type ScoredLevel struct {
	LevelID  uuid.UUID
	FactorID uuid.UUID
	Level    int
	Points   int
	Weight   float64
}

// Contribution is the level's weighted share of the role's total.
func (s ScoredLevel) Contribution() float64 {
	return float64(s.Points) * s.Weight
}
