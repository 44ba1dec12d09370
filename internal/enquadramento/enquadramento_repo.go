package enquadramento

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-cargos-salarios/internal/employee"
	"go-cargos-salarios/internal/grade"
	"go-cargos-salarios/internal/grid"
	"go-cargos-salarios/internal/jobrole"
)

type Repository interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var employees []employee.Employee
	if err := r.db.WithContext(ctx).
		Preload("Benefits").
		Order("name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}

	var roles []jobrole.JobRole
	if err := r.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, err
	}
	rolesByID := make(map[uuid.UUID]jobrole.JobRole, len(roles))
	for _, role := range roles {
		rolesByID[role.ID] = role
	}

	var grades []grade.SalaryGrade
	if err := r.db.WithContext(ctx).
		Order("min_points ASC, name ASC").
		Find(&grades).Error; err != nil {
		return nil, err
	}

	var cells []grid.GridCellRow
	if err := r.db.WithContext(ctx).
		Table("salary_grid_cells").
		Select("salary_grid_cells.id, salary_grid_cells.grade_id, salary_grid_cells.step_id, salary_steps.name AS step_name, salary_grid_cells.amount").
		Joins("JOIN salary_steps ON salary_steps.id = salary_grid_cells.step_id").
		Order("salary_grid_cells.grade_id ASC, salary_steps.name ASC").
		Scan(&cells).Error; err != nil {
		return nil, err
	}
	cellsByGrade := make(map[uuid.UUID][]grid.GridCellRow)
	for _, cell := range cells {
		cellsByGrade[cell.GradeID] = append(cellsByGrade[cell.GradeID], cell)
	}

	return &Snapshot{
		Employees:    employees,
		Roles:        rolesByID,
		Grades:       grades,
		CellsByGrade: cellsByGrade,
	}, nil
}
