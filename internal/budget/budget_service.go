package budget

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	budgeterrors "go-cargos-salarios/internal/budget/errors"
	"go-cargos-salarios/internal/enquadramento"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)

var warningThreshold = decimal.NewFromFloat(0.9)

// ActualsProvider supplies the simulated current cost per department. Wired
// to the enquadramento service in the registry.
type ActualsProvider interface {
	ActualByDepartment(ctx context.Context) (map[string]enquadramento.DepartmentActual, error)
}

type Service interface {
	Create(ctx context.Context, req CreateBudgetPlanRequest) (BudgetPlanResponse, error)
	GetAll(ctx context.Context) ([]BudgetPlanResponse, error)
	GetByID(ctx context.Context, id string) (BudgetPlanResponse, error)
	ReplaceItems(ctx context.Context, id string, req ReplaceItemsRequest) (BudgetPlanResponse, error)
	Delete(ctx context.Context, id string) error
	Overview(ctx context.Context, year int) ([]DepartmentBudgetRow, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	actuals ActualsProvider
}

func NewService(db *sql.DB, repo Repository, actuals ActualsProvider) Service {
	return &service{db: db, repo: repo, actuals: actuals}
}

func (s *service) Create(ctx context.Context, req CreateBudgetPlanRequest) (BudgetPlanResponse, error) {
	items, err := buildItems(req.Items)
	if err != nil {
		return BudgetPlanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BudgetPlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	plan := &BudgetPlan{
		ID:   uuid.New(),
		Year: *req.Year,
	}

	if err := qtx.Create(ctx, plan); err != nil {
		return BudgetPlanResponse{}, mapRepositoryError(err)
	}

	for i := range items {
		items[i].PlanID = plan.ID
	}
	if err := qtx.ReplaceItems(ctx, plan.ID, items); err != nil {
		return BudgetPlanResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BudgetPlanResponse{}, err
	}

	return s.GetByID(ctx, plan.ID.String())
}

func (s *service) GetAll(ctx context.Context) ([]BudgetPlanResponse, error) {
	plans, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]BudgetPlanResponse, len(plans))
	for i, plan := range plans {
		resp[i] = mapToResponse(plan)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BudgetPlanResponse, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BudgetPlanResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*plan), nil
}

func (s *service) ReplaceItems(
	ctx context.Context,
	id string,
	req ReplaceItemsRequest,
) (BudgetPlanResponse, error) {
	items, err := buildItems(req.Items)
	if err != nil {
		return BudgetPlanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BudgetPlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	plan, err := qtx.FindByID(ctx, id)
	if err != nil {
		return BudgetPlanResponse{}, mapRepositoryError(err)
	}

	for i := range items {
		items[i].PlanID = plan.ID
	}
	if err := qtx.ReplaceItems(ctx, plan.ID, items); err != nil {
		return BudgetPlanResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BudgetPlanResponse{}, err
	}

	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// Overview unions the year's targets with the simulated actuals: every
// department present in either set gets a row, sorted by actual cost
// descending. A missing plan for the year just means every target is zero.
func (s *service) Overview(ctx context.Context, year int) ([]DepartmentBudgetRow, error) {
	targets := map[string]BudgetPlanItem{}
	plan, err := s.repo.FindByYear(ctx, year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapRepositoryError(err)
	}
	if err == nil {
		for _, item := range plan.Items {
			targets[item.Department] = item
		}
	}

	actuals, err := s.actuals.ActualByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	departments := map[string]struct{}{}
	for department := range targets {
		departments[department] = struct{}{}
	}
	for department := range actuals {
		departments[department] = struct{}{}
	}

	rows := make([]DepartmentBudgetRow, 0, len(departments))
	for department := range departments {
		target := targets[department]
		actual := actuals[department]

		actualCost := actual.TotalCost
		plannedBudget := target.PlannedBudget

		rows = append(rows, DepartmentBudgetRow{
			Department:       department,
			PlannedBudget:    plannedBudget,
			ActualCost:       actualCost,
			BudgetGap:        plannedBudget.Sub(actualCost),
			PlannedHeadcount: target.PlannedHeadcount,
			ActualHeadcount:  actual.Headcount,
			HeadcountGap:     target.PlannedHeadcount - actual.Headcount,
			Status:           classify(actualCost, plannedBudget),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ActualCost.Equal(rows[j].ActualCost) {
			return rows[i].ActualCost.GreaterThan(rows[j].ActualCost)
		}
		return rows[i].Department < rows[j].Department
	})

	return rows, nil
}

// classify never flags a zero target: a department without a budget line is
// "ok" regardless of spend.
func classify(actual, target decimal.Decimal) string {
	if !target.IsPositive() {
		return StatusOK
	}
	if actual.GreaterThan(target) {
		return StatusDanger
	}
	if actual.GreaterThan(target.Mul(warningThreshold)) {
		return StatusWarning
	}
	return StatusOK
}

func buildItems(reqs []BudgetPlanItemRequest) ([]BudgetPlanItem, error) {
	seen := map[string]struct{}{}
	items := make([]BudgetPlanItem, len(reqs))
	for i, req := range reqs {
		if _, dup := seen[req.Department]; dup {
			return nil, budgeterrors.ErrDuplicateDepartment
		}
		seen[req.Department] = struct{}{}

		if req.PlannedBudget.IsNegative() {
			return nil, budgeterrors.ErrInvalidBudget
		}

		items[i] = BudgetPlanItem{
			ID:               uuid.New(),
			Department:       req.Department,
			PlannedBudget:    *req.PlannedBudget,
			PlannedHeadcount: *req.PlannedHeadcount,
		}
	}
	return items, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return budgeterrors.ErrPlanNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return budgeterrors.ErrYearTaken
	}

	return err
}

func mapToResponse(plan BudgetPlan) BudgetPlanResponse {
	items := make([]BudgetPlanItemResponse, len(plan.Items))
	for i, item := range plan.Items {
		items[i] = BudgetPlanItemResponse{
			ID:               item.ID.String(),
			Department:       item.Department,
			PlannedBudget:    item.PlannedBudget,
			PlannedHeadcount: item.PlannedHeadcount,
		}
	}
	return BudgetPlanResponse{
		ID:    plan.ID.String(),
		Year:  plan.Year,
		Items: items,
	}
}
