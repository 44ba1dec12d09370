package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id string) error
	ReplaceBenefits(ctx context.Context, employeeID uuid.UUID, benefitIDs []uuid.UUID) error
	CountBenefits(ctx context.Context, benefitIDs []string) (int64, error)
	JobRoleExists(ctx context.Context, jobRoleID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Omit("Benefits").Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("Benefits").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("Benefits").
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", emp.ID).
		Updates(map[string]any{
			"name":        emp.Name,
			"salary":      emp.Salary,
			"hiring_type": emp.HiringType,
			"job_role_id": emp.JobRoleID,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Exec(`DELETE FROM employee_benefits WHERE employee_id = ?`, id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

// ReplaceBenefits runs through the service transaction so the benefit set is
// rewritten as one unit, never observable half old and half new.
func (r *repository) ReplaceBenefits(
	ctx context.Context,
	employeeID uuid.UUID,
	benefitIDs []uuid.UUID,
) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM employee_benefits WHERE employee_id = $1`, employeeID,
	); err != nil {
		return err
	}

	for _, benefitID := range benefitIDs {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO employee_benefits (employee_id, benefit_id) VALUES ($1, $2)`,
			employeeID, benefitID,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) CountBenefits(ctx context.Context, benefitIDs []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("benefits").
		Where("id IN ?", benefitIDs).
		Count(&count).Error
	return count, err
}

func (r *repository) JobRoleExists(ctx context.Context, jobRoleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("job_roles").
		Where("id = ?", jobRoleID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
