package grade

import (
	"context"
	"database/sql"

	gradeerrors "go-cargos-salarios/internal/grade/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateGradeRequest) (GradeResponse, error)
	GetAll(ctx context.Context) ([]GradeResponse, error)
	GetByID(ctx context.Context, id string) (GradeResponse, error)
	Update(ctx context.Context, id string, req UpdateGradeRequest) (GradeResponse, error)
	Delete(ctx context.Context, id string) error
	Resolve(ctx context.Context, points float64) (ResolveGradeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("grade.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("grade.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateGradeRequest,
) (GradeResponse, error) {
	if *req.MinPoints > *req.MaxPoints {
		return GradeResponse{}, gradeerrors.ErrInvalidPointRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	grd := &SalaryGrade{
		ID:        uuid.New(),
		Name:      req.Name,
		MinPoints: *req.MinPoints,
		MaxPoints: *req.MaxPoints,
	}

	if err := qtx.Create(ctx, grd); err != nil {
		return GradeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GradeResponse{}, err
	}

	return mapToResponse(*grd), nil
}

func (s *service) GetAll(ctx context.Context) ([]GradeResponse, error) {
	grades, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(grades), nil
}

func (s *service) GetByID(ctx context.Context, id string) (GradeResponse, error) {
	grd, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return GradeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*grd), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateGradeRequest,
) (GradeResponse, error) {
	if *req.MinPoints > *req.MaxPoints {
		return GradeResponse{}, gradeerrors.ErrInvalidPointRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	grd, err := qtx.FindByID(ctx, id)
	if err != nil {
		return GradeResponse{}, mapRepositoryError(err)
	}

	grd.Name = req.Name
	grd.MinPoints = *req.MinPoints
	grd.MaxPoints = *req.MaxPoints

	if err := qtx.Update(ctx, grd); err != nil {
		return GradeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GradeResponse{}, err
	}

	return mapToResponse(*grd), nil
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

	// Drop the band's grid row and unclassify its roles before the band
	// itself goes, all inside the same transaction.
	if err := qtx.DeleteCellsByGrade(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.DetachJobRoles(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("salary grade deleted",
		zap.String("grade_id", id),
	)

	return nil
}

// Resolve maps a point total to its band. An unclassified total is a valid
// outcome: Grade comes back nil, not an error.
func (s *service) Resolve(ctx context.Context, points float64) (ResolveGradeResponse, error) {
	if points < 0 {
		return ResolveGradeResponse{}, gradeerrors.ErrInvalidPoints
	}

	grades, err := s.repo.FindAll(ctx)
	if err != nil {
		return ResolveGradeResponse{}, mapRepositoryError(err)
	}

	if n := CountMatches(grades, points); n > 1 {
		s.logger.Warn("overlapping grade ranges for point total",
			zap.Float64("points", points),
			zap.Int("matches", n),
		)
	}

	resp := ResolveGradeResponse{Points: points}
	if match := ResolveFrom(grades, points); match != nil {
		r := mapToResponse(*match)
		resp.Grade = &r
	}

	return resp, nil
}

func mapToResponse(grd SalaryGrade) GradeResponse {
	return GradeResponse{
		ID:        grd.ID.String(),
		Name:      grd.Name,
		MinPoints: grd.MinPoints,
		MaxPoints: grd.MaxPoints,
	}
}

func mapToListResponse(grades []SalaryGrade) []GradeResponse {
	resp := make([]GradeResponse, len(grades))
	for i, grd := range grades {
		resp[i] = mapToResponse(grd)
	}
	return resp
}
