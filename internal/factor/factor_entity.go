package factor

import (
	"time"

	"github.com/google/uuid"
)

// Factor is one weighted axis of the point-factor job evaluation method
// (ex: Conhecimento, Autonomia). Weight is a fractional multiplier; the
// administrators keep the weights summing to 1.0 for a normalized scale.
type Factor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null;uniqueIndex"`
	Weight    float64   `gorm:"type:numeric(6,4);not null"`
	Levels    []FactorLevel `gorm:"foreignKey:FactorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FactorLevel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FactorID uuid.UUID `gorm:"type:uuid;not null;index:idx_factor_level,unique"`
	// Level is the ordinal position inside the factor, ascending
	Level     int `gorm:"not null;index:idx_factor_level,unique"`
	Points    int `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
