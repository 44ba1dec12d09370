package taxsetting_test

import (
	"context"
	"database/sql"
	"testing"

	"go-cargos-salarios/internal/taxsetting"
	taxsettingerrors "go-cargos-salarios/internal/taxsetting/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTaxSettingRepository struct {
	withTxFn        func(tx *sql.Tx) taxsetting.Repository
	createFn        func(ctx context.Context, setting *taxsetting.TaxSetting) error
	findAllFn       func(ctx context.Context) ([]taxsetting.TaxSetting, error)
	findByIDFn      func(ctx context.Context, id string) (*taxsetting.TaxSetting, error)
	updateFn        func(ctx context.Context, setting *taxsetting.TaxSetting) error
	deleteFn        func(ctx context.Context, id string) error
	sumByCategoryFn func(ctx context.Context, category string) (float64, error)
}

func (f *fakeTaxSettingRepository) WithTx(tx *sql.Tx) taxsetting.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTaxSettingRepository) Create(ctx context.Context, setting *taxsetting.TaxSetting) error {
	if f.createFn != nil {
		return f.createFn(ctx, setting)
	}
	return nil
}

func (f *fakeTaxSettingRepository) FindAll(ctx context.Context) ([]taxsetting.TaxSetting, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeTaxSettingRepository) FindByID(ctx context.Context, id string) (*taxsetting.TaxSetting, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaxSettingRepository) Update(ctx context.Context, setting *taxsetting.TaxSetting) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, setting)
	}
	return nil
}

func (f *fakeTaxSettingRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTaxSettingRepository) SumByCategory(ctx context.Context, category string) (float64, error) {
	if f.sumByCategoryFn != nil {
		return f.sumByCategoryFn(ctx, category)
	}
	return 0, nil
}

func setupTaxSettingServiceTest(t *testing.T) (taxsetting.Service, *fakeTaxSettingRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTaxSettingRepository{}
	svc := taxsetting.NewService(db, repo)
	return svc, repo, sqlMock, db
}

func TestTaxSettingService_AggregateRate(t *testing.T) {
	ctx := context.Background()

	t.Run("sums the category and converts percent to fraction", func(t *testing.T) {
		svc, repo, _, db := setupTaxSettingServiceTest(t)
		defer db.Close()

		// INSS 20 + FGTS 8 = 28% of salary
		repo.sumByCategoryFn = func(ctx context.Context, category string) (float64, error) {
			assert.Equal(t, taxsetting.CategoryCLT, category)
			return 28, nil
		}

		rate, err := svc.AggregateRate(ctx, taxsetting.CategoryCLT)

		assert.NoError(t, err)
		assert.Equal(t, "0.28", rate.String())
	})

	t.Run("empty category sums to zero", func(t *testing.T) {
		svc, repo, _, db := setupTaxSettingServiceTest(t)
		defer db.Close()

		repo.sumByCategoryFn = func(ctx context.Context, category string) (float64, error) {
			return 0, nil
		}

		rate, err := svc.AggregateRate(ctx, taxsetting.CategoryPJ)

		assert.NoError(t, err)
		assert.True(t, rate.IsZero())
	})

	t.Run("unknown category rejected before touching the repo", func(t *testing.T) {
		svc, repo, _, db := setupTaxSettingServiceTest(t)
		defer db.Close()

		repo.sumByCategoryFn = func(ctx context.Context, category string) (float64, error) {
			t.Fatal("repo must not be reached")
			return 0, nil
		}

		_, err := svc.AggregateRate(ctx, "ESTAGIO")

		assert.ErrorIs(t, err, taxsettingerrors.ErrInvalidCategory)
	})
}

func TestTaxSettingService_Create(t *testing.T) {
	svc, repo, sqlMock, db := setupTaxSettingServiceTest(t)
	defer db.Close()

	ctx := context.Background()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	value := 8.0
	repo.createFn = func(ctx context.Context, setting *taxsetting.TaxSetting) error {
		assert.Equal(t, "FGTS", setting.Key)
		assert.Equal(t, 8.0, setting.Value)
		assert.Equal(t, taxsetting.CategoryCLT, setting.Category)
		return nil
	}

	resp, err := svc.Create(ctx, taxsetting.CreateTaxSettingRequest{
		Key:      "FGTS",
		Value:    &value,
		Category: taxsetting.CategoryCLT,
	})

	assert.NoError(t, err)
	assert.Equal(t, "FGTS", resp.Key)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestTaxSettingService_Update_NotFound(t *testing.T) {
	svc, _, sqlMock, db := setupTaxSettingServiceTest(t)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	value := 11.0
	_, err := svc.Update(context.Background(), "8c2d9a64-0000-0000-0000-000000000000", taxsetting.UpdateTaxSettingRequest{
		Key:      "INSS",
		Value:    &value,
		Category: taxsetting.CategoryCLT,
	})

	assert.ErrorIs(t, err, taxsettingerrors.ErrTaxSettingNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
