package jobrole_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-cargos-salarios/internal/grade"
	"go-cargos-salarios/internal/jobrole"
	jobroleerrors "go-cargos-salarios/internal/jobrole/errors"
	"go-cargos-salarios/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeJobRoleRepository struct {
	withTxFn             func(tx *sql.Tx) jobrole.Repository
	createFn             func(ctx context.Context, role *jobrole.JobRole) error
	findAllFn            func(ctx context.Context) ([]jobrole.JobRole, error)
	findByIDFn           func(ctx context.Context, id string) (*jobrole.JobRole, error)
	updateFn             func(ctx context.Context, role *jobrole.JobRole) error
	deleteFn             func(ctx context.Context, id string) error
	findLevelsByIDsFn    func(ctx context.Context, levelIDs []string) ([]jobrole.ScoredLevel, error)
	findScoredLevelsFn   func(ctx context.Context, jobRoleID string) ([]jobrole.ScoredLevel, error)
	replaceScoresFn      func(ctx context.Context, jobRoleID uuid.UUID, scores []jobrole.JobScore) error
	updateCachedFieldsFn func(ctx context.Context, jobRoleID uuid.UUID, totalPoints float64, gradeID *uuid.UUID) error
}

func (f *fakeJobRoleRepository) WithTx(tx *sql.Tx) jobrole.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeJobRoleRepository) Create(ctx context.Context, role *jobrole.JobRole) error {
	if f.createFn != nil {
		return f.createFn(ctx, role)
	}
	return nil
}

func (f *fakeJobRoleRepository) FindAll(ctx context.Context) ([]jobrole.JobRole, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeJobRoleRepository) FindByID(ctx context.Context, id string) (*jobrole.JobRole, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobRoleRepository) Update(ctx context.Context, role *jobrole.JobRole) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, role)
	}
	return nil
}

func (f *fakeJobRoleRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeJobRoleRepository) FindLevelsByIDs(ctx context.Context, levelIDs []string) ([]jobrole.ScoredLevel, error) {
	if f.findLevelsByIDsFn != nil {
		return f.findLevelsByIDsFn(ctx, levelIDs)
	}
	return nil, nil
}

func (f *fakeJobRoleRepository) FindScoredLevels(ctx context.Context, jobRoleID string) ([]jobrole.ScoredLevel, error) {
	if f.findScoredLevelsFn != nil {
		return f.findScoredLevelsFn(ctx, jobRoleID)
	}
	return nil, nil
}

func (f *fakeJobRoleRepository) ReplaceScores(ctx context.Context, jobRoleID uuid.UUID, scores []jobrole.JobScore) error {
	if f.replaceScoresFn != nil {
		return f.replaceScoresFn(ctx, jobRoleID, scores)
	}
	return nil
}

func (f *fakeJobRoleRepository) UpdateCachedFields(ctx context.Context, jobRoleID uuid.UUID, totalPoints float64, gradeID *uuid.UUID) error {
	if f.updateCachedFieldsFn != nil {
		return f.updateCachedFieldsFn(ctx, jobRoleID, totalPoints, gradeID)
	}
	return nil
}

type fakeGradeRepository struct {
	findAllFn  func(ctx context.Context) ([]grade.SalaryGrade, error)
	findByIDFn func(ctx context.Context, id string) (*grade.SalaryGrade, error)
}

func (f *fakeGradeRepository) WithTx(tx *sql.Tx) grade.Repository { return f }

func (f *fakeGradeRepository) Create(ctx context.Context, g *grade.SalaryGrade) error { return nil }

func (f *fakeGradeRepository) FindAll(ctx context.Context) ([]grade.SalaryGrade, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeGradeRepository) FindByID(ctx context.Context, id string) (*grade.SalaryGrade, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGradeRepository) Update(ctx context.Context, g *grade.SalaryGrade) error { return nil }

func (f *fakeGradeRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeGradeRepository) DeleteCellsByGrade(ctx context.Context, id string) error { return nil }

func (f *fakeGradeRepository) DetachJobRoles(ctx context.Context, id string) error { return nil }

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func (f *fakeOutboxRepository) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type jobRoleServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   jobrole.Service
	repo      *fakeJobRoleRepository
	gradeRepo *fakeGradeRepository
	outbox    *fakeOutboxRepository
}

func setupJobRoleServiceTest(t *testing.T) *jobRoleServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeJobRoleRepository{}
	gradeRepo := &fakeGradeRepository{}
	outbox := &fakeOutboxRepository{}
	svc := jobrole.NewServiceWithOutbox(db, repo, gradeRepo, outbox)

	return &jobRoleServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		gradeRepo: gradeRepo,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// Four weighted factors: 0.4×100 + 0.3×45 + 0.15×50 + 0.15×60 = 70.0 points.
func weightedLevels(factorIDs [4]uuid.UUID, levelIDs [4]uuid.UUID) []jobrole.ScoredLevel {
	return []jobrole.ScoredLevel{
		{LevelID: levelIDs[0], FactorID: factorIDs[0], Level: 5, Points: 100, Weight: 0.4},
		{LevelID: levelIDs[1], FactorID: factorIDs[1], Level: 2, Points: 45, Weight: 0.3},
		{LevelID: levelIDs[2], FactorID: factorIDs[2], Level: 3, Points: 50, Weight: 0.15},
		{LevelID: levelIDs[3], FactorID: factorIDs[3], Level: 3, Points: 60, Weight: 0.15},
	}
}

func TestJobRoleService_Score(t *testing.T) {
	ctx := context.Background()

	roleID := uuid.New()
	gradeID := uuid.New()
	var factorIDs, levelIDs [4]uuid.UUID
	for i := range factorIDs {
		factorIDs[i] = uuid.New()
		levelIDs[i] = uuid.New()
	}

	req := jobrole.ScoreJobRequest{LevelsByFactor: map[string]string{
		factorIDs[0].String(): levelIDs[0].String(),
		factorIDs[1].String(): levelIDs[1].String(),
		factorIDs[2].String(): levelIDs[2].String(),
		factorIDs[3].String(): levelIDs[3].String(),
	}}

	t.Run("computes the weighted total and classifies the role", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			return &jobrole.JobRole{ID: roleID, Title: "Analista"}, nil
		}
		deps.repo.findLevelsByIDsFn = func(ctx context.Context, ids []string) ([]jobrole.ScoredLevel, error) {
			assert.Len(t, ids, 4)
			return weightedLevels(factorIDs, levelIDs), nil
		}

		var replacedCount int
		deps.repo.replaceScoresFn = func(ctx context.Context, id uuid.UUID, scores []jobrole.JobScore) error {
			assert.Equal(t, roleID, id)
			replacedCount = len(scores)
			return nil
		}

		var cachedPoints float64
		var cachedGrade *uuid.UUID
		deps.repo.updateCachedFieldsFn = func(ctx context.Context, id uuid.UUID, totalPoints float64, gid *uuid.UUID) error {
			cachedPoints = totalPoints
			cachedGrade = gid
			return nil
		}

		deps.gradeRepo.findAllFn = func(ctx context.Context) ([]grade.SalaryGrade, error) {
			return []grade.SalaryGrade{
				{ID: uuid.New(), Name: "Junior", MinPoints: 0, MaxPoints: 50},
				{ID: gradeID, Name: "Pleno", MinPoints: 51, MaxPoints: 80},
			}, nil
		}
		deps.gradeRepo.findByIDFn = func(ctx context.Context, id string) (*grade.SalaryGrade, error) {
			return &grade.SalaryGrade{ID: gradeID, Name: "Pleno", MinPoints: 51, MaxPoints: 80}, nil
		}

		var queuedEvents int
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queuedEvents++
			assert.Equal(t, "jobrole_rescored", event.EventType)
			return nil
		}

		resp, err := deps.service.Score(ctx, roleID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, 70.0, resp.TotalPoints)
		assert.Equal(t, 4, replacedCount)
		assert.Equal(t, 70.0, cachedPoints)
		if assert.NotNil(t, cachedGrade) {
			assert.Equal(t, gradeID, *cachedGrade)
		}
		if assert.NotNil(t, resp.GradeName) {
			assert.Equal(t, "Pleno", *resp.GradeName)
		}
		assert.Equal(t, 1, queuedEvents)
	})

	t.Run("empty score set zeroes the cache and clears the grade", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			existingGrade := gradeID
			return &jobrole.JobRole{ID: roleID, TotalPoints: 70, GradeID: &existingGrade}, nil
		}
		deps.gradeRepo.findAllFn = func(ctx context.Context) ([]grade.SalaryGrade, error) {
			// a band starting at zero must not capture an unscored role
			return []grade.SalaryGrade{{ID: gradeID, Name: "Junior", MinPoints: 0, MaxPoints: 50}}, nil
		}

		var cachedPoints float64 = -1
		var cachedGrade *uuid.UUID
		deps.repo.updateCachedFieldsFn = func(ctx context.Context, id uuid.UUID, totalPoints float64, gid *uuid.UUID) error {
			cachedPoints = totalPoints
			cachedGrade = gid
			return nil
		}

		resp, err := deps.service.Score(ctx, roleID.String(), jobrole.ScoreJobRequest{
			LevelsByFactor: map[string]string{},
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, resp.TotalPoints)
		assert.Nil(t, resp.GradeID)
		assert.Equal(t, 0.0, cachedPoints)
		assert.Nil(t, cachedGrade)
	})

	t.Run("unknown level id rejects the whole request", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			return &jobrole.JobRole{ID: roleID}, nil
		}
		deps.repo.findLevelsByIDsFn = func(ctx context.Context, ids []string) ([]jobrole.ScoredLevel, error) {
			return nil, nil
		}

		var replaced bool
		deps.repo.replaceScoresFn = func(ctx context.Context, id uuid.UUID, scores []jobrole.JobScore) error {
			replaced = true
			return nil
		}

		_, err := deps.service.Score(ctx, roleID.String(), req)

		assert.ErrorIs(t, err, jobroleerrors.ErrFactorLevelNotFound)
		assert.False(t, replaced)
	})

	t.Run("level belonging to another factor is rejected", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			return &jobrole.JobRole{ID: roleID}, nil
		}
		deps.repo.findLevelsByIDsFn = func(ctx context.Context, ids []string) ([]jobrole.ScoredLevel, error) {
			levels := weightedLevels(factorIDs, levelIDs)
			levels[0].FactorID = uuid.New()
			return levels, nil
		}

		_, err := deps.service.Score(ctx, roleID.String(), req)

		assert.ErrorIs(t, err, jobroleerrors.ErrLevelFactorMismatch)
	})

	t.Run("same level under two factors is rejected before any read", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		shared := uuid.NewString()
		var fetched bool
		deps.repo.findLevelsByIDsFn = func(ctx context.Context, ids []string) ([]jobrole.ScoredLevel, error) {
			fetched = true
			return nil, nil
		}

		_, err := deps.service.Score(ctx, roleID.String(), jobrole.ScoreJobRequest{
			LevelsByFactor: map[string]string{
				factorIDs[0].String(): shared,
				factorIDs[1].String(): shared,
			},
		})

		assert.ErrorIs(t, err, jobroleerrors.ErrLevelFactorMismatch)
		assert.False(t, fetched)
	})

	t.Run("missing job role", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Score(ctx, roleID.String(), req)

		assert.ErrorIs(t, err, jobroleerrors.ErrJobRoleNotFound)
	})
}

func TestJobRoleService_Recalculate(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.New()

	t.Run("rebuilds the cache from the remaining scores", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			return &jobrole.JobRole{ID: roleID}, nil
		}
		deps.repo.findScoredLevelsFn = func(ctx context.Context, id string) ([]jobrole.ScoredLevel, error) {
			return []jobrole.ScoredLevel{
				{LevelID: uuid.New(), FactorID: uuid.New(), Points: 45, Weight: 0.3},
				{LevelID: uuid.New(), FactorID: uuid.New(), Points: 50, Weight: 0.15},
				{LevelID: uuid.New(), FactorID: uuid.New(), Points: 60, Weight: 0.15},
			}, nil
		}
		deps.gradeRepo.findAllFn = func(ctx context.Context) ([]grade.SalaryGrade, error) {
			return []grade.SalaryGrade{{ID: uuid.New(), Name: "Junior", MinPoints: 0, MaxPoints: 50}}, nil
		}

		var cachedPoints float64
		deps.repo.updateCachedFieldsFn = func(ctx context.Context, id uuid.UUID, totalPoints float64, gid *uuid.UUID) error {
			cachedPoints = totalPoints
			return nil
		}

		err := deps.service.Recalculate(ctx, roleID.String())

		assert.NoError(t, err)
		// 0.3×45 + 0.15×50 + 0.15×60 = 30.0 after the 0.4-weight factor is gone
		assert.InDelta(t, 30.0, cachedPoints, 1e-9)
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		deps := setupJobRoleServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
			return &jobrole.JobRole{ID: roleID}, nil
		}
		deps.repo.findScoredLevelsFn = func(ctx context.Context, id string) ([]jobrole.ScoredLevel, error) {
			return nil, errors.New("db down")
		}

		err := deps.service.Recalculate(ctx, roleID.String())

		assert.Error(t, err)
	})
}

func TestJobRoleService_Delete(t *testing.T) {
	deps := setupJobRoleServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	roleID := uuid.New()

	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*jobrole.JobRole, error) {
		return &jobrole.JobRole{ID: roleID}, nil
	}

	var deleted bool
	deps.repo.deleteFn = func(ctx context.Context, id string) error {
		assert.Equal(t, roleID.String(), id)
		deleted = true
		return nil
	}

	err := deps.service.Delete(ctx, roleID.String())

	assert.NoError(t, err)
	assert.True(t, deleted)
}
