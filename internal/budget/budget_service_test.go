package budget_test

import (
	"context"
	"database/sql"
	"testing"

	"go-cargos-salarios/internal/budget"
	budgeterrors "go-cargos-salarios/internal/budget/errors"
	"go-cargos-salarios/internal/enquadramento"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBudgetRepository struct {
	withTxFn       func(tx *sql.Tx) budget.Repository
	createFn       func(ctx context.Context, plan *budget.BudgetPlan) error
	findAllFn      func(ctx context.Context) ([]budget.BudgetPlan, error)
	findByIDFn     func(ctx context.Context, id string) (*budget.BudgetPlan, error)
	findByYearFn   func(ctx context.Context, year int) (*budget.BudgetPlan, error)
	deleteFn       func(ctx context.Context, id string) error
	replaceItemsFn func(ctx context.Context, planID uuid.UUID, items []budget.BudgetPlanItem) error
}

func (f *fakeBudgetRepository) WithTx(tx *sql.Tx) budget.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBudgetRepository) Create(ctx context.Context, plan *budget.BudgetPlan) error {
	if f.createFn != nil {
		return f.createFn(ctx, plan)
	}
	return nil
}

func (f *fakeBudgetRepository) FindAll(ctx context.Context) ([]budget.BudgetPlan, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeBudgetRepository) FindByID(ctx context.Context, id string) (*budget.BudgetPlan, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBudgetRepository) FindByYear(ctx context.Context, year int) (*budget.BudgetPlan, error) {
	if f.findByYearFn != nil {
		return f.findByYearFn(ctx, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBudgetRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeBudgetRepository) ReplaceItems(ctx context.Context, planID uuid.UUID, items []budget.BudgetPlanItem) error {
	if f.replaceItemsFn != nil {
		return f.replaceItemsFn(ctx, planID, items)
	}
	return nil
}

type fakeActualsProvider struct {
	actuals map[string]enquadramento.DepartmentActual
	err     error
}

func (f *fakeActualsProvider) ActualByDepartment(ctx context.Context) (map[string]enquadramento.DepartmentActual, error) {
	return f.actuals, f.err
}

type budgetServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service budget.Service
	repo    *fakeBudgetRepository
	actuals *fakeActualsProvider
}

func setupBudgetServiceTest(t *testing.T) *budgetServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBudgetRepository{}
	actuals := &fakeActualsProvider{actuals: map[string]enquadramento.DepartmentActual{}}
	svc := budget.NewService(db, repo, actuals)

	return &budgetServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, actuals: actuals}
}

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func planWith(year int, items ...budget.BudgetPlanItem) *budget.BudgetPlan {
	plan := &budget.BudgetPlan{ID: uuid.New(), Year: year, Items: items}
	for i := range plan.Items {
		plan.Items[i].PlanID = plan.ID
	}
	return plan
}

func item(department, planned string, headcount int) budget.BudgetPlanItem {
	return budget.BudgetPlanItem{
		ID:               uuid.New(),
		Department:       department,
		PlannedBudget:    money(planned),
		PlannedHeadcount: headcount,
	}
}

func actual(department, cost string, headcount int) enquadramento.DepartmentActual {
	return enquadramento.DepartmentActual{
		Department: department,
		TotalCost:  money(cost),
		Headcount:  headcount,
	}
}

func TestBudgetService_Overview(t *testing.T) {
	ctx := context.Background()
	year := 2026

	t.Run("unions planned and actual departments sorted by actual cost", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByYearFn = func(ctx context.Context, y int) (*budget.BudgetPlan, error) {
			assert.Equal(t, year, y)
			return planWith(year,
				item("Engenharia", "50000", 10),
				item("Marketing", "20000", 5),
			), nil
		}
		deps.actuals.actuals = map[string]enquadramento.DepartmentActual{
			"Engenharia": actual("Engenharia", "30000", 8),
			"Comercial":  actual("Comercial", "45000", 12),
		}

		rows, err := deps.service.Overview(ctx, year)

		assert.NoError(t, err)
		assert.Len(t, rows, 3)

		// sorted by actual cost descending
		assert.Equal(t, "Comercial", rows[0].Department)
		assert.Equal(t, "Engenharia", rows[1].Department)
		assert.Equal(t, "Marketing", rows[2].Department)

		// Comercial has spend but no plan line
		assert.Equal(t, "0.00", rows[0].PlannedBudget.StringFixed(2))
		assert.Equal(t, -12, rows[0].HeadcountGap)

		// gaps are target − actual
		assert.Equal(t, "20000.00", rows[1].BudgetGap.StringFixed(2))
		assert.Equal(t, 2, rows[1].HeadcountGap)

		// Marketing planned but nobody hired yet
		assert.Equal(t, "20000.00", rows[2].BudgetGap.StringFixed(2))
		assert.Equal(t, 5, rows[2].HeadcountGap)
	})

	t.Run("status classification", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByYearFn = func(ctx context.Context, y int) (*budget.BudgetPlan, error) {
			return planWith(year,
				item("Estourado", "10000", 3),
				item("NoLimite", "10000", 3),
				item("Folgado", "10000", 3),
			), nil
		}
		deps.actuals.actuals = map[string]enquadramento.DepartmentActual{
			"Estourado": actual("Estourado", "12000", 3),
			"NoLimite":  actual("NoLimite", "9500", 3),
			"Folgado":   actual("Folgado", "5000", 3),
		}

		rows, err := deps.service.Overview(ctx, year)

		assert.NoError(t, err)
		statuses := map[string]string{}
		for _, row := range rows {
			statuses[row.Department] = row.Status
		}
		assert.Equal(t, budget.StatusDanger, statuses["Estourado"])
		assert.Equal(t, budget.StatusWarning, statuses["NoLimite"])
		assert.Equal(t, budget.StatusOK, statuses["Folgado"])
	})

	t.Run("zero target is never danger or warning", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByYearFn = func(ctx context.Context, y int) (*budget.BudgetPlan, error) {
			return planWith(year, item("SemMeta", "0", 0)), nil
		}
		deps.actuals.actuals = map[string]enquadramento.DepartmentActual{
			"SemMeta": actual("SemMeta", "10000", 4),
		}

		rows, err := deps.service.Overview(ctx, year)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, budget.StatusOK, rows[0].Status)
		assert.Equal(t, "-10000.00", rows[0].BudgetGap.StringFixed(2))
	})

	t.Run("missing plan for the year means zero targets, not an error", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByYearFn = func(ctx context.Context, y int) (*budget.BudgetPlan, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.actuals.actuals = map[string]enquadramento.DepartmentActual{
			"Engenharia": actual("Engenharia", "30000", 8),
		}

		rows, err := deps.service.Overview(ctx, year)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, budget.StatusOK, rows[0].Status)
		assert.Equal(t, "0.00", rows[0].PlannedBudget.StringFixed(2))
	})
}

func TestBudgetService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the plan and its items in one transaction", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var itemCount int
		deps.repo.replaceItemsFn = func(ctx context.Context, planID uuid.UUID, items []budget.BudgetPlanItem) error {
			itemCount = len(items)
			for _, it := range items {
				assert.Equal(t, planID, it.PlanID)
			}
			return nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*budget.BudgetPlan, error) {
			return planWith(2026, item("Engenharia", "50000", 10)), nil
		}

		year := 2026
		headcount := 10
		planned := money("50000")
		resp, err := deps.service.Create(ctx, budget.CreateBudgetPlanRequest{
			Year: &year,
			Items: []budget.BudgetPlanItemRequest{
				{Department: "Engenharia", PlannedBudget: &planned, PlannedHeadcount: &headcount},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, 1, itemCount)
	})

	t.Run("duplicate department in one request is rejected", func(t *testing.T) {
		deps := setupBudgetServiceTest(t)
		defer deps.db.Close()

		year := 2026
		headcount := 1
		planned := money("1000")
		_, err := deps.service.Create(ctx, budget.CreateBudgetPlanRequest{
			Year: &year,
			Items: []budget.BudgetPlanItemRequest{
				{Department: "Engenharia", PlannedBudget: &planned, PlannedHeadcount: &headcount},
				{Department: "Engenharia", PlannedBudget: &planned, PlannedHeadcount: &headcount},
			},
		})

		assert.ErrorIs(t, err, budgeterrors.ErrDuplicateDepartment)
	})
}
