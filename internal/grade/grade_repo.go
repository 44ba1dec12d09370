package grade

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, grade *SalaryGrade) error
	FindAll(ctx context.Context) ([]SalaryGrade, error)
	FindByID(ctx context.Context, id string) (*SalaryGrade, error)
	Update(ctx context.Context, grade *SalaryGrade) error
	Delete(ctx context.Context, id string) error
	DeleteCellsByGrade(ctx context.Context, id string) error
	DetachJobRoles(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, grade *SalaryGrade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

// FindAll returns grades ordered ascending by min_points then name. The
// resolver relies on this ordering for its lowest-band-wins tie-break.
func (r *repository) FindAll(ctx context.Context) ([]SalaryGrade, error) {
	var grades []SalaryGrade
	err := r.db.WithContext(ctx).
		Order("min_points ASC, name ASC").
		Find(&grades).Error
	return grades, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryGrade, error) {
	var grade SalaryGrade
	err := r.db.WithContext(ctx).
		First(&grade, "id = ?", id).Error
	return &grade, err
}

func (r *repository) Update(ctx context.Context, grade *SalaryGrade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SalaryGrade{}, "id = ?", id).Error
}

// DeleteCellsByGrade drops the grade's grid row so no cell keeps pointing at
// a band that no longer exists.
func (r *repository) DeleteCellsByGrade(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx,
		`DELETE FROM salary_grid_cells WHERE grade_id = $1`, id)
	return err
}

// DetachJobRoles clears the cached classification of every role in the band.
// Their point totals survive, so the next resolution re-bands them live.
func (r *repository) DetachJobRoles(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx,
		`UPDATE job_roles SET grade_id = NULL, updated_at = NOW() WHERE grade_id = $1`, id)
	return err
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
