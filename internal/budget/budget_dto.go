package budget

import "github.com/shopspring/decimal"

type BudgetPlanItemRequest struct {
	Department       string           `json:"department" binding:"required"`
	PlannedBudget    *decimal.Decimal `json:"plannedBudget" binding:"required"`
	PlannedHeadcount *int             `json:"plannedHeadcount" binding:"required,gte=0"`
}

type CreateBudgetPlanRequest struct {
	Year  *int                    `json:"year" binding:"required,gte=2000,lte=2100"`
	Items []BudgetPlanItemRequest `json:"items" binding:"omitempty,dive"`
}

type ReplaceItemsRequest struct {
	Items []BudgetPlanItemRequest `json:"items" binding:"required,dive"`
}

type BudgetPlanItemResponse struct {
	ID               string          `json:"id"`
	Department       string          `json:"department"`
	PlannedBudget    decimal.Decimal `json:"plannedBudget"`
	PlannedHeadcount int             `json:"plannedHeadcount"`
}

type BudgetPlanResponse struct {
	ID    string                   `json:"id"`
	Year  int                      `json:"year"`
	Items []BudgetPlanItemResponse `json:"items"`
}

// DepartmentBudgetRow is one line of the overview: targets against the
// simulated actuals, with positive gaps meaning under budget / under hired.
type DepartmentBudgetRow struct {
	Department       string          `json:"department"`
	PlannedBudget    decimal.Decimal `json:"plannedBudget"`
	ActualCost       decimal.Decimal `json:"actualCost"`
	BudgetGap        decimal.Decimal `json:"budgetGap"`
	PlannedHeadcount int             `json:"plannedHeadcount"`
	ActualHeadcount  int             `json:"actualHeadcount"`
	HeadcountGap     int             `json:"headcountGap"`
	Status           string          `json:"status"`
}
