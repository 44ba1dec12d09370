package jobrole

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, role *JobRole) error
	FindAll(ctx context.Context) ([]JobRole, error)
	FindByID(ctx context.Context, id string) (*JobRole, error)
	Update(ctx context.Context, role *JobRole) error
	Delete(ctx context.Context, id string) error
	FindLevelsByIDs(ctx context.Context, levelIDs []string) ([]ScoredLevel, error)
	FindScoredLevels(ctx context.Context, jobRoleID string) ([]ScoredLevel, error)
	ReplaceScores(ctx context.Context, jobRoleID uuid.UUID, scores []JobScore) error
	UpdateCachedFields(ctx context.Context, jobRoleID uuid.UUID, totalPoints float64, gradeID *uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, role *JobRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) FindAll(ctx context.Context) ([]JobRole, error) {
	var roles []JobRole
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*JobRole, error) {
	var role JobRole
	err := r.db.WithContext(ctx).
		First(&role, "id = ?", id).Error
	return &role, err
}

func (r *repository) Update(ctx context.Context, role *JobRole) error {
	return r.db.WithContext(ctx).
		Model(&JobRole{}).
		Where("id = ?", role.ID).
		Updates(map[string]any{
			"title":      role.Title,
			"department": role.Department,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Delete(&JobScore{}, "job_role_id = ?", id).Error; err != nil {
		return err
	}
	// employees keep their row and fall back to "Sem Cargo"
	if err := r.db.WithContext(ctx).
		Exec(`UPDATE employees SET job_role_id = NULL WHERE job_role_id = ?`, id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&JobRole{}, "id = ?", id).Error
}

func (r *repository) FindLevelsByIDs(ctx context.Context, levelIDs []string) ([]ScoredLevel, error) {
	var levels []ScoredLevel
	err := r.db.WithContext(ctx).
		Table("factor_levels").
		Select("factor_levels.id AS level_id, factor_levels.factor_id, factor_levels.level, factor_levels.points, factors.weight").
		Joins("JOIN factors ON factors.id = factor_levels.factor_id").
		Where("factor_levels.id IN ?", levelIDs).
		Scan(&levels).Error
	return levels, err
}

func (r *repository) FindScoredLevels(ctx context.Context, jobRoleID string) ([]ScoredLevel, error) {
	var levels []ScoredLevel
	err := r.db.WithContext(ctx).
		Table("job_scores").
		Select("factor_levels.id AS level_id, factor_levels.factor_id, factor_levels.level, factor_levels.points, factors.weight").
		Joins("JOIN factor_levels ON factor_levels.id = job_scores.factor_level_id").
		Joins("JOIN factors ON factors.id = factor_levels.factor_id").
		Where("job_scores.job_role_id = ?", jobRoleID).
		Scan(&levels).Error
	return levels, err
}

// ReplaceScores and UpdateCachedFields run through the service transaction so
// the score set and the cached fields can never be observed out of sync.
func (r *repository) ReplaceScores(ctx context.Context, jobRoleID uuid.UUID, scores []JobScore) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM job_scores WHERE job_role_id = $1`, jobRoleID,
	); err != nil {
		return err
	}

	for _, score := range scores {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO job_scores (id, job_role_id, factor_level_id, created_at) VALUES ($1, $2, $3, NOW())`,
			score.ID, score.JobRoleID, score.FactorLevelID,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) UpdateCachedFields(
	ctx context.Context,
	jobRoleID uuid.UUID,
	totalPoints float64,
	gradeID *uuid.UUID,
) error {
	exec := r.execer()
	_, err := exec.ExecContext(ctx,
		`UPDATE job_roles SET total_points = $2, grade_id = $3, updated_at = NOW() WHERE id = $1`,
		jobRoleID, totalPoints, gradeID,
	)
	return err
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
