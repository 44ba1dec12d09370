package benefit

import (
	"context"
	"database/sql"
	"errors"

	benefiterrors "go-cargos-salarios/internal/benefit/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateBenefitRequest) (BenefitResponse, error)
	GetAll(ctx context.Context) ([]BenefitResponse, error)
	GetByID(ctx context.Context, id string) (BenefitResponse, error)
	Update(ctx context.Context, id string, req UpdateBenefitRequest) (BenefitResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateBenefitRequest) (BenefitResponse, error) {
	if req.Value.IsNegative() {
		return BenefitResponse{}, benefiterrors.ErrInvalidBenefitValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BenefitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	benefit := &Benefit{
		ID:    uuid.New(),
		Name:  req.Name,
		Type:  req.Type,
		Value: req.Value,
	}

	if err := qtx.Create(ctx, benefit); err != nil {
		return BenefitResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BenefitResponse{}, err
	}

	return mapToResponse(*benefit), nil
}

func (s *service) GetAll(ctx context.Context) ([]BenefitResponse, error) {
	benefits, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]BenefitResponse, len(benefits))
	for i, benefit := range benefits {
		resp[i] = mapToResponse(benefit)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BenefitResponse, error) {
	benefit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BenefitResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*benefit), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateBenefitRequest,
) (BenefitResponse, error) {
	if req.Value.IsNegative() {
		return BenefitResponse{}, benefiterrors.ErrInvalidBenefitValue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BenefitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	benefit, err := qtx.FindByID(ctx, id)
	if err != nil {
		return BenefitResponse{}, mapRepositoryError(err)
	}

	benefit.Name = req.Name
	benefit.Type = req.Type
	benefit.Value = req.Value

	if err := qtx.Update(ctx, benefit); err != nil {
		return BenefitResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BenefitResponse{}, err
	}

	return mapToResponse(*benefit), nil
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

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return benefiterrors.ErrBenefitNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return benefiterrors.ErrBenefitNameTaken
	}

	return err
}

func mapToResponse(benefit Benefit) BenefitResponse {
	return BenefitResponse{
		ID:    benefit.ID.String(),
		Name:  benefit.Name,
		Type:  benefit.Type,
		Value: benefit.Value,
	}
}
