package grid

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateStep(ctx context.Context, step *SalaryStep) error
	FindAllSteps(ctx context.Context) ([]SalaryStep, error)
	FindStepByID(ctx context.Context, id string) (*SalaryStep, error)
	DeleteStep(ctx context.Context, id string) error
	UpsertCell(ctx context.Context, cell *SalaryGridCell) error
	FindCellsByGrade(ctx context.Context, gradeID string) ([]GridCellRow, error)
	FindAllCells(ctx context.Context) ([]GridCellRow, error)
	UpdateCellAmount(ctx context.Context, cellID uuid.UUID, amount decimal.Decimal) error
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

func (r *repository) CreateStep(ctx context.Context, step *SalaryStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *repository) FindAllSteps(ctx context.Context) ([]SalaryStep, error) {
	var steps []SalaryStep
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&steps).Error
	return steps, err
}

func (r *repository) FindStepByID(ctx context.Context, id string) (*SalaryStep, error) {
	var step SalaryStep
	err := r.db.WithContext(ctx).
		First(&step, "id = ?", id).Error
	return &step, err
}

func (r *repository) DeleteStep(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Delete(&SalaryGridCell{}, "step_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&SalaryStep{}, "id = ?", id).Error
}

// UpsertCell writes through the service transaction when one is active so
// multi-cell mutations (row generation, global increase) land atomically.
func (r *repository) UpsertCell(ctx context.Context, cell *SalaryGridCell) error {
	exec := r.execer()
	_, err := exec.ExecContext(ctx, `
INSERT INTO salary_grid_cells (id, grade_id, step_id, amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
ON CONFLICT (grade_id, step_id)
DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
`, cell.ID, cell.GradeID, cell.StepID, cell.Amount)
	return err
}

func (r *repository) FindCellsByGrade(ctx context.Context, gradeID string) ([]GridCellRow, error) {
	var rows []GridCellRow
	err := r.db.WithContext(ctx).
		Table("salary_grid_cells").
		Select("salary_grid_cells.id, salary_grid_cells.grade_id, salary_grid_cells.step_id, salary_steps.name AS step_name, salary_grid_cells.amount").
		Joins("JOIN salary_steps ON salary_steps.id = salary_grid_cells.step_id").
		Where("salary_grid_cells.grade_id = ?", gradeID).
		Order("salary_steps.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindAllCells(ctx context.Context) ([]GridCellRow, error) {
	var rows []GridCellRow
	err := r.db.WithContext(ctx).
		Table("salary_grid_cells").
		Select("salary_grid_cells.id, salary_grid_cells.grade_id, salary_grid_cells.step_id, salary_steps.name AS step_name, salary_grid_cells.amount").
		Joins("JOIN salary_steps ON salary_steps.id = salary_grid_cells.step_id").
		Order("salary_grid_cells.grade_id ASC, salary_steps.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) UpdateCellAmount(ctx context.Context, cellID uuid.UUID, amount decimal.Decimal) error {
	exec := r.execer()
	_, err := exec.ExecContext(ctx,
		`UPDATE salary_grid_cells SET amount = $2, updated_at = NOW() WHERE id = $1`,
		cellID, amount,
	)
	return err
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
