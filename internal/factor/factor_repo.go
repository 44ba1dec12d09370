package factor

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, factor *Factor) error
	FindAll(ctx context.Context) ([]Factor, error)
	FindByID(ctx context.Context, id string) (*Factor, error)
	Update(ctx context.Context, factor *Factor) error
	ReplaceLevels(ctx context.Context, factorID string, levels []FactorLevel) error
	Delete(ctx context.Context, id string) error
	FindJobRoleIDsUsingFactor(ctx context.Context, factorID string) ([]string, error)
	DeleteScoresByFactor(ctx context.Context, factorID string) error
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

func (r *repository) Create(ctx context.Context, factor *Factor) error {
	return r.db.WithContext(ctx).Create(factor).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Factor, error) {
	var factors []Factor
	err := r.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		Order("name ASC").
		Find(&factors).Error
	return factors, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Factor, error) {
	var factor Factor
	err := r.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		First(&factor, "id = ?", id).Error
	return &factor, err
}

func (r *repository) Update(ctx context.Context, factor *Factor) error {
	return r.db.WithContext(ctx).
		Model(&Factor{}).
		Where("id = ?", factor.ID).
		Updates(map[string]any{
			"name":   factor.Name,
			"weight": factor.Weight,
		}).Error
}

func (r *repository) ReplaceLevels(ctx context.Context, factorID string, levels []FactorLevel) error {
	if err := r.db.WithContext(ctx).
		Delete(&FactorLevel{}, "factor_id = ?", factorID).Error; err != nil {
		return err
	}
	if len(levels) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&levels).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Delete(&FactorLevel{}, "factor_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Factor{}, "id = ?", id).Error
}

func (r *repository) FindJobRoleIDsUsingFactor(ctx context.Context, factorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("job_scores").
		Distinct("job_scores.job_role_id::text").
		Joins("JOIN factor_levels ON factor_levels.id = job_scores.factor_level_id").
		Where("factor_levels.factor_id = ?", factorID).
		Pluck("job_scores.job_role_id::text", &ids).Error
	return ids, err
}

func (r *repository) DeleteScoresByFactor(ctx context.Context, factorID string) error {
	return r.db.WithContext(ctx).
		Exec(`
DELETE FROM job_scores
WHERE factor_level_id IN (
	SELECT id FROM factor_levels WHERE factor_id = ?
)`, factorID).Error
}
