package taxsetting

import (
	"context"
	"database/sql"
	"errors"

	taxsettingerrors "go-cargos-salarios/internal/taxsetting/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateTaxSettingRequest) (TaxSettingResponse, error)
	GetAll(ctx context.Context) ([]TaxSettingResponse, error)
	GetByID(ctx context.Context, id string) (TaxSettingResponse, error)
	Update(ctx context.Context, id string, req UpdateTaxSettingRequest) (TaxSettingResponse, error)
	Delete(ctx context.Context, id string) error
	AggregateRate(ctx context.Context, category string) (decimal.Decimal, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateTaxSettingRequest,
) (TaxSettingResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaxSettingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	setting := &TaxSetting{
		ID:       uuid.New(),
		Key:      req.Key,
		Value:    *req.Value,
		Category: req.Category,
	}

	if err := qtx.Create(ctx, setting); err != nil {
		return TaxSettingResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TaxSettingResponse{}, err
	}

	return mapToResponse(*setting), nil
}

func (s *service) GetAll(ctx context.Context) ([]TaxSettingResponse, error) {
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]TaxSettingResponse, len(settings))
	for i, setting := range settings {
		resp[i] = mapToResponse(setting)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaxSettingResponse, error) {
	setting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaxSettingResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*setting), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateTaxSettingRequest,
) (TaxSettingResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaxSettingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	setting, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaxSettingResponse{}, mapRepositoryError(err)
	}

	setting.Key = req.Key
	setting.Value = *req.Value
	setting.Category = req.Category

	if err := qtx.Update(ctx, setting); err != nil {
		return TaxSettingResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TaxSettingResponse{}, err
	}

	return mapToResponse(*setting), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// AggregateRate returns the sum of the category's percentages as a fraction
// (28% across settings -> 0.28).
func (s *service) AggregateRate(ctx context.Context, category string) (decimal.Decimal, error) {
	if category != CategoryCLT && category != CategoryPJ {
		return decimal.Zero, taxsettingerrors.ErrInvalidCategory
	}

	total, err := s.repo.SumByCategory(ctx, category)
	if err != nil {
		return decimal.Zero, mapRepositoryError(err)
	}

	return decimal.NewFromFloat(total).Div(decimal.NewFromInt(100)), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taxsettingerrors.ErrTaxSettingNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return taxsettingerrors.ErrTaxKeyTaken
	}

	return err
}

func mapToResponse(setting TaxSetting) TaxSettingResponse {
	return TaxSettingResponse{
		ID:       setting.ID.String(),
		Key:      setting.Key,
		Value:    setting.Value,
		Category: setting.Category,
	}
}
