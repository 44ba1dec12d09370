package budget

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, plan *BudgetPlan) error
	FindAll(ctx context.Context) ([]BudgetPlan, error)
	FindByID(ctx context.Context, id string) (*BudgetPlan, error)
	FindByYear(ctx context.Context, year int) (*BudgetPlan, error)
	Delete(ctx context.Context, id string) error
	ReplaceItems(ctx context.Context, planID uuid.UUID, items []BudgetPlanItem) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, plan *BudgetPlan) error {
	return r.db.WithContext(ctx).Omit("Items").Create(plan).Error
}

func (r *repository) FindAll(ctx context.Context) ([]BudgetPlan, error) {
	var plans []BudgetPlan
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("department ASC")
		}).
		Order("year DESC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*BudgetPlan, error) {
	var plan BudgetPlan
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("department ASC")
		}).
		First(&plan, "id = ?", id).Error
	return &plan, err
}

func (r *repository) FindByYear(ctx context.Context, year int) (*BudgetPlan, error) {
	var plan BudgetPlan
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("department ASC")
		}).
		First(&plan, "year = ?", year).Error
	return &plan, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Delete(&BudgetPlanItem{}, "plan_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&BudgetPlan{}, "id = ?", id).Error
}

// ReplaceItems rewrites the plan's targets through the service transaction so
// the plan is never half old and half new.
func (r *repository) ReplaceItems(
	ctx context.Context,
	planID uuid.UUID,
	items []BudgetPlanItem,
) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM budget_plan_items WHERE plan_id = $1`, planID,
	); err != nil {
		return err
	}

	for _, item := range items {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO budget_plan_items (id, plan_id, department, planned_budget, planned_headcount, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
			item.ID, item.PlanID, item.Department, item.PlannedBudget, item.PlannedHeadcount,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
