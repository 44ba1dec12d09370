package events

import "time"

const GridChangedTopic = "comp.grid.changed.v1"

// Event types carried on GridChangedTopic. Every grid mutation that can move
// a floor or ceiling lands here so the simulation cache is dropped eagerly
// instead of waiting out its TTL.
const (
	GridIncreaseApplied = "grid_increase_applied"
	GridRowGenerated    = "grid_row_generated"
	GridCellUpserted    = "grid_cell_upserted"
)

type GridChangedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	GradeID       string    `json:"grade_id,omitempty"`
	Percentage    float64   `json:"percentage,omitempty"`
	CellsAffected int       `json:"cells_affected"`
	OccurredAt    time.Time `json:"occurred_at"`
}
