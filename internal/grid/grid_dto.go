package grid

import "github.com/shopspring/decimal"

type CreateStepRequest struct {
	Name string `json:"name" binding:"required"`
}

type StepResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UpsertCellRequest struct {
	GradeID string          `json:"grade_id" binding:"required,uuid"`
	StepID  string          `json:"step_id" binding:"required,uuid"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

type GenerateRowRequest struct {
	BaseAmount     *decimal.Decimal `json:"base_amount"`
	ProgressionPct *float64         `json:"progression_pct"`
}

type GlobalIncreaseRequest struct {
	Percentage *float64 `json:"percentage" binding:"required"`
}

type CellResponse struct {
	ID       string          `json:"id"`
	GradeID  string          `json:"grade_id"`
	StepID   string          `json:"step_id"`
	StepName string          `json:"step_name"`
	Amount   decimal.Decimal `json:"amount"`
}

type GlobalIncreaseResponse struct {
	Percentage   float64 `json:"percentage"`
	CellsUpdated int     `json:"cells_updated"`
}

type GradeRowResponse struct {
	GradeID   string         `json:"grade_id"`
	GradeName string         `json:"grade_name"`
	Cells     []CellResponse `json:"cells"`
}
