package factor

import (
	"context"
	"database/sql"

	factorerrors "go-cargos-salarios/internal/factor/errors"
	"go-cargos-salarios/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rescorer recomputes a job role's cached point total and grade from its
// remaining scores. Implemented by the jobrole service and wired in the
// registry so the catalog does not import the scorer.
type Rescorer interface {
	Recalculate(ctx context.Context, jobRoleID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateFactorRequest) (FactorResponse, error)
	GetAll(ctx context.Context) ([]FactorResponse, error)
	GetByID(ctx context.Context, id string) (FactorResponse, error)
	Update(ctx context.Context, id string, req UpdateFactorRequest) (FactorResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	rescorer Rescorer
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rescorer Rescorer, logger ...*zap.Logger) Service {
	l := zap.L().Named("factor.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("factor.service")
	}
	return &service{db: db, repo: repo, rescorer: rescorer, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateFactorRequest,
) (FactorResponse, error) {
	if err := validateLevels(req.Levels); err != nil {
		return FactorResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FactorResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fct := &Factor{
		ID:     uuid.New(),
		Name:   req.Name,
		Weight: req.Weight,
		Levels: buildLevels(uuid.Nil, req.Levels),
	}
	for i := range fct.Levels {
		fct.Levels[i].FactorID = fct.ID
	}

	if err := qtx.Create(ctx, fct); err != nil {
		s.logger.Error("create factor persist failed", zap.Error(err))
		return FactorResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return FactorResponse{}, err
	}

	s.logger.Info("factor created",
		zap.String("factor_id", fct.ID.String()),
		zap.String("name", fct.Name),
		zap.Float64("weight", fct.Weight),
	)

	return mapToResponse(*fct), nil
}

func (s *service) GetAll(ctx context.Context) ([]FactorResponse, error) {
	factors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(factors), nil
}

func (s *service) GetByID(ctx context.Context, id string) (FactorResponse, error) {
	fct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return FactorResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*fct), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateFactorRequest,
) (FactorResponse, error) {
	if err := validateLevels(req.Levels); err != nil {
		return FactorResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FactorResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		return FactorResponse{}, mapRepositoryError(err)
	}

	existing.Name = req.Name
	existing.Weight = req.Weight

	if err := qtx.Update(ctx, existing); err != nil {
		return FactorResponse{}, mapRepositoryError(err)
	}

	// replacing levels touches every job score built on them, so the
	// dependent roles are rescored after commit
	levels := buildLevels(existing.ID, req.Levels)
	if err := qtx.ReplaceLevels(ctx, id, levels); err != nil {
		return FactorResponse{}, mapRepositoryError(err)
	}

	affected, err := qtx.FindJobRoleIDsUsingFactor(ctx, id)
	if err != nil {
		return FactorResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return FactorResponse{}, err
	}

	s.rescoreAffected(ctx, affected)

	existing.Levels = levels
	return mapToResponse(*existing), nil
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

	affected, err := qtx.FindJobRoleIDsUsingFactor(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	// scores referencing this factor's levels go first, then the catalog
	// entry itself; both inside the same transaction
	if err := qtx.DeleteScoresByFactor(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("factor deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("factor_id", id),
		zap.Int("job_roles_affected", len(affected)),
	)

	s.rescoreAffected(ctx, affected)

	return nil
}

func (s *service) rescoreAffected(ctx context.Context, jobRoleIDs []string) {
	if s.rescorer == nil {
		return
	}
	for _, roleID := range jobRoleIDs {
		if err := s.rescorer.Recalculate(ctx, roleID); err != nil {
			s.logger.Error("rescore dependent job role failed",
				zap.String("job_role_id", roleID),
				zap.Error(err),
			)
		}
	}
}

func validateLevels(levels []CreateFactorLevelRequest) error {
	seen := make(map[int]bool, len(levels))
	for _, lvl := range levels {
		if seen[lvl.Level] {
			return factorerrors.ErrDuplicateLevel
		}
		seen[lvl.Level] = true
	}
	return nil
}

func buildLevels(factorID uuid.UUID, reqs []CreateFactorLevelRequest) []FactorLevel {
	levels := make([]FactorLevel, len(reqs))
	for i, lvl := range reqs {
		levels[i] = FactorLevel{
			ID:       uuid.New(),
			FactorID: factorID,
			Level:    lvl.Level,
			Points:   lvl.Points,
		}
	}
	return levels
}

func mapToResponse(fct Factor) FactorResponse {
	levels := make([]FactorLevelResponse, len(fct.Levels))
	for i, lvl := range fct.Levels {
		levels[i] = FactorLevelResponse{
			ID:     lvl.ID.String(),
			Level:  lvl.Level,
			Points: lvl.Points,
		}
	}
	return FactorResponse{
		ID:     fct.ID.String(),
		Name:   fct.Name,
		Weight: fct.Weight,
		Levels: levels,
	}
}

func mapToListResponse(factors []Factor) []FactorResponse {
	resp := make([]FactorResponse, len(factors))
	for i, fct := range factors {
		resp[i] = mapToResponse(fct)
	}
	return resp
}
