package benefit

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, benefit *Benefit) error
	FindAll(ctx context.Context) ([]Benefit, error)
	FindByID(ctx context.Context, id string) (*Benefit, error)
	Update(ctx context.Context, benefit *Benefit) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, benefit *Benefit) error {
	return r.db.WithContext(ctx).Create(benefit).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Benefit, error) {
	var benefits []Benefit
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&benefits).Error
	return benefits, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Benefit, error) {
	var benefit Benefit
	err := r.db.WithContext(ctx).
		First(&benefit, "id = ?", id).Error
	return &benefit, err
}

func (r *repository) Update(ctx context.Context, benefit *Benefit) error {
	return r.db.WithContext(ctx).Save(benefit).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	// unlink from employees first, then drop the definition
	if err := r.db.WithContext(ctx).
		Exec(`DELETE FROM employee_benefits WHERE benefit_id = ?`, id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Benefit{}, "id = ?", id).Error
}
