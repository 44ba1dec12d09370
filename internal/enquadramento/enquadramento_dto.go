package enquadramento

import "github.com/shopspring/decimal"

type SimulationRow struct {
	EmployeeID     string          `json:"employeeId"`
	EmployeeName   string          `json:"employeeName"`
	JobRoleTitle   string          `json:"jobRoleTitle,omitempty"`
	Department     string          `json:"department"`
	GradeName      string          `json:"gradeName,omitempty"`
	MatchedStep    string          `json:"matchedStep,omitempty"`
	Status         string          `json:"status"`
	CurrentSalary  decimal.Decimal `json:"currentSalary"`
	ProposedSalary decimal.Decimal `json:"proposedSalary"`
	SalaryGap      decimal.Decimal `json:"salaryGap"`
	CurrentCost    decimal.Decimal `json:"currentCost"`
	ProposedCost   decimal.Decimal `json:"proposedCost"`
	TotalGap       decimal.Decimal `json:"totalGap"`
}

type SimulationSummary struct {
	Headcount          int             `json:"headcount"`
	TotalCurrentSalary decimal.Decimal `json:"totalCurrentSalary"`
	TotalCurrentCost   decimal.Decimal `json:"totalCurrentCost"`
	TotalProposedCost  decimal.Decimal `json:"totalProposedCost"`
	TotalImpact        decimal.Decimal `json:"totalImpact"`
	ImpactPct          decimal.Decimal `json:"impactPct"`
	BelowCount         int             `json:"belowCount"`
	AboveCount         int             `json:"aboveCount"`
}

type SimulationResponse struct {
	Summary SimulationSummary `json:"summary"`
	Rows    []SimulationRow   `json:"rows"`
}
