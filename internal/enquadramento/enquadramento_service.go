package enquadramento

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-cargos-salarios/internal/employee"
	"go-cargos-salarios/internal/grade"
	"go-cargos-salarios/internal/grid"
	"go-cargos-salarios/internal/jobrole"
	"go-cargos-salarios/internal/taxsetting"
)

const simulationCacheTTL = 10 * time.Minute

var one = decimal.NewFromInt(1)

type Service interface {
	Simulate(ctx context.Context) (SimulationResponse, error)
	ActualByDepartment(ctx context.Context) (map[string]DepartmentActual, error)
}

type service struct {
	repo   Repository
	taxes  taxsetting.Service
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	repo Repository,
	taxes taxsetting.Service,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("enquadramento.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("enquadramento.service")
	}
	return &service{
		repo:   repo,
		taxes:  taxes,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Simulate classifies the whole roster against the salary structure. The run
// is a pure read over one snapshot; results are cached until a rescore or a
// grid mutation invalidates them, with a TTL as backstop.
func (s *service) Simulate(ctx context.Context) (SimulationResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, SimulationCacheKey).Result(); err == nil {
			var resp SimulationResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(SimulationCacheKey, func() (interface{}, error) {
		resp, err := s.simulate(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, SimulationCacheKey, jsonData, simulationCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return SimulationResponse{}, err
	}

	return v.(SimulationResponse), nil
}

func (s *service) simulate(ctx context.Context) (SimulationResponse, error) {
	snapshot, rates, err := s.load(ctx)
	if err != nil {
		return SimulationResponse{}, err
	}

	rows := make([]SimulationRow, 0, len(snapshot.Employees))
	summary := SimulationSummary{
		TotalCurrentSalary: decimal.Zero,
		TotalCurrentCost:   decimal.Zero,
		TotalProposedCost:  decimal.Zero,
		TotalImpact:        decimal.Zero,
		ImpactPct:          decimal.Zero,
	}

	for _, emp := range snapshot.Employees {
		row := s.simulateEmployee(snapshot, rates, emp)
		rows = append(rows, row)

		summary.Headcount++
		summary.TotalCurrentSalary = summary.TotalCurrentSalary.Add(row.CurrentSalary)
		summary.TotalCurrentCost = summary.TotalCurrentCost.Add(row.CurrentCost)
		summary.TotalProposedCost = summary.TotalProposedCost.Add(row.ProposedCost)

		switch row.Status {
		case StatusBelowRange:
			summary.BelowCount++
		case StatusAboveRange:
			summary.AboveCount++
		}
	}

	summary.TotalImpact = summary.TotalProposedCost.Sub(summary.TotalCurrentCost)
	if summary.TotalCurrentCost.IsPositive() {
		summary.ImpactPct = summary.TotalImpact.
			Div(summary.TotalCurrentCost).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	s.logger.Debug("simulation computed",
		zap.Int("headcount", summary.Headcount),
		zap.Int("below_count", summary.BelowCount),
		zap.Int("above_count", summary.AboveCount),
	)

	return SimulationResponse{Summary: summary, Rows: rows}, nil
}

type regimeRates struct {
	clt decimal.Decimal
	pj  decimal.Decimal
}

func (r regimeRates) forType(hiringType string) decimal.Decimal {
	if hiringType == employee.HiringTypePJ {
		return r.pj
	}
	return r.clt
}

func (s *service) load(ctx context.Context) (*Snapshot, regimeRates, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, regimeRates{}, err
	}

	cltRate, err := s.taxes.AggregateRate(ctx, taxsetting.CategoryCLT)
	if err != nil {
		return nil, regimeRates{}, err
	}
	pjRate, err := s.taxes.AggregateRate(ctx, taxsetting.CategoryPJ)
	if err != nil {
		return nil, regimeRates{}, err
	}

	return snapshot, regimeRates{clt: cltRate, pj: pjRate}, nil
}

func (s *service) simulateEmployee(
	snapshot *Snapshot,
	rates regimeRates,
	emp employee.Employee,
) SimulationRow {
	rate := rates.forType(emp.HiringType)

	currentSalary := emp.Salary
	currentCost := costOf(emp, currentSalary, rate)

	row := SimulationRow{
		EmployeeID:     emp.ID.String(),
		EmployeeName:   emp.Name,
		Department:     DefaultDepartment,
		CurrentSalary:  currentSalary.Round(2),
		ProposedSalary: currentSalary.Round(2),
		SalaryGap:      decimal.Zero,
		CurrentCost:    currentCost.Round(2),
	}

	var role *jobrole.JobRole
	if emp.JobRoleID != nil {
		if found, ok := snapshot.Roles[*emp.JobRoleID]; ok {
			role = &found
		}
	}

	if role == nil {
		row.Status = StatusNoRole
		row.ProposedCost = row.CurrentCost
		row.TotalGap = decimal.Zero
		return row
	}

	row.JobRoleTitle = role.Title
	if role.Department != "" {
		row.Department = role.Department
	}

	resolved := s.resolveGrade(snapshot, *role)
	var cells []grid.GridCellRow
	if resolved != nil {
		row.GradeName = resolved.Name
		cells = snapshot.CellsByGrade[resolved.ID]
	}

	if resolved == nil || len(cells) == 0 {
		row.Status = StatusNoTable
		row.ProposedCost = row.CurrentCost
		row.TotalGap = decimal.Zero
		return row
	}

	stepA := cells[0]
	stepMax := cells[len(cells)-1]
	proposedSalary := currentSalary

	switch {
	case currentSalary.LessThan(stepA.Amount):
		row.Status = StatusBelowRange
		proposedSalary = stepA.Amount
		row.MatchedStep = stepA.StepName
		row.SalaryGap = stepA.Amount.Sub(currentSalary).Round(2)
	case currentSalary.GreaterThan(stepMax.Amount):
		// no salary cuts: over-ceiling keeps the current salary
		row.Status = StatusAboveRange
		row.MatchedStep = stepMax.StepName
	default:
		row.Status = StatusWithinRange
		for _, cell := range cells {
			if cell.Amount.LessThanOrEqual(currentSalary) {
				row.MatchedStep = cell.StepName
			}
		}
	}

	row.ProposedSalary = proposedSalary.Round(2)
	proposedCost := costOf(emp, proposedSalary, rate)
	row.ProposedCost = proposedCost.Round(2)
	row.TotalGap = row.ProposedCost.Sub(row.CurrentCost)

	return row
}

// resolveGrade prefers the role's cached grade and falls back to scanning the
// bands when the cache is empty but the role has points.
func (s *service) resolveGrade(snapshot *Snapshot, role jobrole.JobRole) *grade.SalaryGrade {
	if role.GradeID != nil {
		for i := range snapshot.Grades {
			if snapshot.Grades[i].ID == *role.GradeID {
				return &snapshot.Grades[i]
			}
		}
	}
	if role.TotalPoints > 0 {
		return grade.ResolveFrom(snapshot.Grades, role.TotalPoints)
	}
	return nil
}

// costOf applies the regime rate and the benefit rules to one salary figure.
// PERCENTAGE benefits re-derive from whatever salary is passed in.
func costOf(emp employee.Employee, salary decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	benefitsCost := decimal.Zero
	for _, b := range emp.Benefits {
		benefitsCost = benefitsCost.Add(b.Cost(salary))
	}
	return salary.Mul(one.Add(rate)).Add(benefitsCost)
}

// ActualByDepartment feeds the budget overview: current cost and headcount
// per department, bypassing the grid entirely.
func (s *service) ActualByDepartment(ctx context.Context) (map[string]DepartmentActual, error) {
	snapshot, rates, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	actuals := make(map[string]DepartmentActual)
	for _, emp := range snapshot.Employees {
		department := DefaultDepartment
		if emp.JobRoleID != nil {
			if role, ok := snapshot.Roles[*emp.JobRoleID]; ok && role.Department != "" {
				department = role.Department
			}
		}

		cost := costOf(emp, emp.Salary, rates.forType(emp.HiringType)).Round(2)

		entry := actuals[department]
		entry.Department = department
		entry.Headcount++
		entry.TotalCost = entry.TotalCost.Add(cost)
		actuals[department] = entry
	}

	return actuals, nil
}
