package budget_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cargos-salarios/internal/budget"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type fakeBudgetService struct {
	createFn       func(ctx context.Context, req budget.CreateBudgetPlanRequest) (budget.BudgetPlanResponse, error)
	getAllFn       func(ctx context.Context) ([]budget.BudgetPlanResponse, error)
	getByIDFn      func(ctx context.Context, id string) (budget.BudgetPlanResponse, error)
	replaceItemsFn func(ctx context.Context, id string, req budget.ReplaceItemsRequest) (budget.BudgetPlanResponse, error)
	deleteFn       func(ctx context.Context, id string) error
	overviewFn     func(ctx context.Context, year int) ([]budget.DepartmentBudgetRow, error)
}

func (f *fakeBudgetService) Create(ctx context.Context, req budget.CreateBudgetPlanRequest) (budget.BudgetPlanResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeBudgetService) GetAll(ctx context.Context) ([]budget.BudgetPlanResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeBudgetService) GetByID(ctx context.Context, id string) (budget.BudgetPlanResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBudgetService) ReplaceItems(ctx context.Context, id string, req budget.ReplaceItemsRequest) (budget.BudgetPlanResponse, error) {
	return f.replaceItemsFn(ctx, id, req)
}

func (f *fakeBudgetService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeBudgetService) Overview(ctx context.Context, year int) ([]budget.DepartmentBudgetRow, error) {
	return f.overviewFn(ctx, year)
}

func TestBudgetHandler_Overview(t *testing.T) {
	svc := &fakeBudgetService{
		overviewFn: func(ctx context.Context, year int) ([]budget.DepartmentBudgetRow, error) {
			assert.Equal(t, 2026, year)
			return []budget.DepartmentBudgetRow{
				{
					Department:    "Engenharia",
					PlannedBudget: decimal.NewFromInt(10000),
					ActualCost:    decimal.RequireFromString("9500.00"),
					BudgetGap:     decimal.RequireFromString("500.00"),
					Status:        budget.StatusWarning,
				},
			}, nil
		},
	}

	h := budget.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/budgets/overview?year=2026", nil)

	h.Overview(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)

	var rows []budget.DepartmentBudgetRow
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, budget.StatusWarning, rows[0].Status)
}

func TestBudgetHandler_Overview_BadYearParam(t *testing.T) {
	svc := &fakeBudgetService{
		overviewFn: func(ctx context.Context, year int) ([]budget.DepartmentBudgetRow, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	}

	h := budget.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/budgets/overview?year=dois-mil", nil)

	h.Overview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}
