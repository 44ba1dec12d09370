package taxsetting

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, setting *TaxSetting) error
	FindAll(ctx context.Context) ([]TaxSetting, error)
	FindByID(ctx context.Context, id string) (*TaxSetting, error)
	Update(ctx context.Context, setting *TaxSetting) error
	Delete(ctx context.Context, id string) error
	SumByCategory(ctx context.Context, category string) (float64, error)
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

func (r *repository) Create(ctx context.Context, setting *TaxSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *repository) FindAll(ctx context.Context) ([]TaxSetting, error) {
	var settings []TaxSetting
	err := r.db.WithContext(ctx).
		Order("category ASC, key ASC").
		Find(&settings).Error
	return settings, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TaxSetting, error) {
	var setting TaxSetting
	err := r.db.WithContext(ctx).
		First(&setting, "id = ?", id).Error
	return &setting, err
}

func (r *repository) Update(ctx context.Context, setting *TaxSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TaxSetting{}, "id = ?", id).Error
}

func (r *repository) SumByCategory(ctx context.Context, category string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&TaxSetting{}).
		Where("category = ?", category).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}
