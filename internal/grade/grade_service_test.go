package grade_test

import (
	"context"
	"database/sql"
	"testing"

	"go-cargos-salarios/internal/grade"
	gradeerrors "go-cargos-salarios/internal/grade/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeGradeRepository struct {
	withTxFn      func(tx *sql.Tx) grade.Repository
	createFn      func(ctx context.Context, grd *grade.SalaryGrade) error
	findAllFn     func(ctx context.Context) ([]grade.SalaryGrade, error)
	findByIDFn    func(ctx context.Context, id string) (*grade.SalaryGrade, error)
	updateFn      func(ctx context.Context, grd *grade.SalaryGrade) error
	deleteFn      func(ctx context.Context, id string) error
	deleteCellsFn func(ctx context.Context, id string) error
	detachRolesFn func(ctx context.Context, id string) error
}

func (f *fakeGradeRepository) WithTx(tx *sql.Tx) grade.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeGradeRepository) Create(ctx context.Context, grd *grade.SalaryGrade) error {
	if f.createFn != nil {
		return f.createFn(ctx, grd)
	}
	return nil
}

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

func (f *fakeGradeRepository) Update(ctx context.Context, grd *grade.SalaryGrade) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, grd)
	}
	return nil
}

func (f *fakeGradeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeGradeRepository) DeleteCellsByGrade(ctx context.Context, id string) error {
	if f.deleteCellsFn != nil {
		return f.deleteCellsFn(ctx, id)
	}
	return nil
}

func (f *fakeGradeRepository) DetachJobRoles(ctx context.Context, id string) error {
	if f.detachRolesFn != nil {
		return f.detachRolesFn(ctx, id)
	}
	return nil
}

type gradeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service grade.Service
	repo    *fakeGradeRepository
}

func setupGradeServiceTest(t *testing.T) *gradeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeGradeRepository{}
	svc := grade.NewService(db, repo)

	return &gradeServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func floatPtr(v float64) *float64 { return &v }

func TestGradeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid band", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, grd *grade.SalaryGrade) error {
			assert.Equal(t, "Pleno", grd.Name)
			assert.Equal(t, 51.0, grd.MinPoints)
			return nil
		}

		resp, err := deps.service.Create(ctx, grade.CreateGradeRequest{
			Name:      "Pleno",
			MinPoints: floatPtr(51),
			MaxPoints: floatPtr(80),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Pleno", resp.Name)
	})

	t.Run("min above max is rejected before any write", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		var created bool
		deps.repo.createFn = func(ctx context.Context, grd *grade.SalaryGrade) error {
			created = true
			return nil
		}

		_, err := deps.service.Create(ctx, grade.CreateGradeRequest{
			Name:      "Invertida",
			MinPoints: floatPtr(80),
			MaxPoints: floatPtr(51),
		})

		assert.ErrorIs(t, err, gradeerrors.ErrInvalidPointRange)
		assert.False(t, created)
	})
}

func TestGradeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("clears cells and detaches roles before the band goes", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, gid string) (*grade.SalaryGrade, error) {
			return &grade.SalaryGrade{ID: id, Name: "Pleno", MinPoints: 51, MaxPoints: 80}, nil
		}

		var cellsCleared, rolesDetached, bandDeleted bool
		deps.repo.deleteCellsFn = func(ctx context.Context, gid string) error {
			assert.Equal(t, id.String(), gid)
			assert.False(t, bandDeleted, "cells must go before the band")
			cellsCleared = true
			return nil
		}
		deps.repo.detachRolesFn = func(ctx context.Context, gid string) error {
			assert.Equal(t, id.String(), gid)
			assert.False(t, bandDeleted, "roles must detach before the band")
			rolesDetached = true
			return nil
		}
		deps.repo.deleteFn = func(ctx context.Context, gid string) error {
			bandDeleted = true
			return nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, cellsCleared)
		assert.True(t, rolesDetached)
		assert.True(t, bandDeleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing band rolls back without touching cells", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		var cellsCleared bool
		deps.repo.deleteCellsFn = func(ctx context.Context, gid string) error {
			cellsCleared = true
			return nil
		}

		err := deps.service.Delete(ctx, uuid.NewString())

		assert.ErrorIs(t, err, gradeerrors.ErrGradeNotFound)
		assert.False(t, cellsCleared)
	})
}

func TestGradeService_Resolve(t *testing.T) {
	ctx := context.Background()

	grades := []grade.SalaryGrade{
		{ID: uuid.New(), Name: "Junior", MinPoints: 0, MaxPoints: 50},
		{ID: uuid.New(), Name: "Pleno", MinPoints: 51, MaxPoints: 80},
	}

	t.Run("classified total returns its band", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]grade.SalaryGrade, error) {
			return grades, nil
		}

		resp, err := deps.service.Resolve(ctx, 70)

		assert.NoError(t, err)
		if assert.NotNil(t, resp.Grade) {
			assert.Equal(t, "Pleno", resp.Grade.Name)
		}
	})

	t.Run("unclassified total is data, not an error", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]grade.SalaryGrade, error) {
			return grades, nil
		}

		resp, err := deps.service.Resolve(ctx, 90.5)

		assert.NoError(t, err)
		assert.Nil(t, resp.Grade)
		assert.Equal(t, 90.5, resp.Points)
	})

	t.Run("negative input rejected", func(t *testing.T) {
		deps := setupGradeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Resolve(ctx, -1)

		assert.ErrorIs(t, err, gradeerrors.ErrInvalidPoints)
	})
}
