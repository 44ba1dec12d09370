package jobrole

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-cargos-salarios/internal/events"
	"go-cargos-salarios/internal/grade"
	jobroleerrors "go-cargos-salarios/internal/jobrole/errors"
	"go-cargos-salarios/internal/messaging/kafka"
	"go-cargos-salarios/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateJobRoleRequest) (JobRoleResponse, error)
	GetAll(ctx context.Context) ([]JobRoleResponse, error)
	GetByID(ctx context.Context, id string) (JobRoleResponse, error)
	Update(ctx context.Context, id string, req UpdateJobRoleRequest) (JobRoleResponse, error)
	Delete(ctx context.Context, id string) error
	Score(ctx context.Context, id string, req ScoreJobRequest) (ScoreJobResponse, error)
	Recalculate(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	gradeRepo grade.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	gradeRepo grade.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, gradeRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	gradeRepo grade.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("jobrole.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobrole.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		gradeRepo: gradeRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateJobRoleRequest,
) (JobRoleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobRoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role := &JobRole{
		ID:         uuid.New(),
		Title:      req.Title,
		Department: req.Department,
	}

	if err := qtx.Create(ctx, role); err != nil {
		return JobRoleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return JobRoleResponse{}, err
	}

	return s.mapToResponse(ctx, *role), nil
}

func (s *service) GetAll(ctx context.Context) ([]JobRoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]JobRoleResponse, len(roles))
	for i, role := range roles {
		resp[i] = s.mapToResponse(ctx, role)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (JobRoleResponse, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobRoleResponse{}, mapRepositoryError(err)
	}

	return s.mapToResponse(ctx, *role), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateJobRoleRequest,
) (JobRoleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobRoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindByID(ctx, id)
	if err != nil {
		return JobRoleResponse{}, mapRepositoryError(err)
	}

	role.Title = req.Title
	role.Department = req.Department

	if err := qtx.Update(ctx, role); err != nil {
		return JobRoleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return JobRoleResponse{}, err
	}

	return s.mapToResponse(ctx, *role), nil
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

// Score replaces the role's whole score set and recomputes the cached point
// total and grade inside one transaction. Factors omitted from the request
// lose their previous score.
func (s *service) Score(
	ctx context.Context,
	id string,
	req ScoreJobRequest,
) (ScoreJobResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("score job role requested",
		zap.String("request_id", rid),
		zap.String("job_role_id", id),
		zap.Int("factor_count", len(req.LevelsByFactor)),
	)

	levelByFactor := make(map[uuid.UUID]uuid.UUID, len(req.LevelsByFactor))
	seenLevels := make(map[uuid.UUID]struct{}, len(req.LevelsByFactor))
	levelIDs := make([]string, 0, len(req.LevelsByFactor))
	for factorID, levelID := range req.LevelsByFactor {
		fid, err := uuid.Parse(factorID)
		if err != nil {
			return ScoreJobResponse{}, jobroleerrors.ErrInvalidFactorID
		}
		lid, err := uuid.Parse(levelID)
		if err != nil {
			return ScoreJobResponse{}, jobroleerrors.ErrInvalidLevelID
		}
		// A level belongs to exactly one factor, so the same level showing
		// up under two factors is a mismatch for at least one of them.
		if _, dup := seenLevels[lid]; dup {
			return ScoreJobResponse{}, jobroleerrors.ErrLevelFactorMismatch
		}
		seenLevels[lid] = struct{}{}
		levelByFactor[fid] = lid
		levelIDs = append(levelIDs, levelID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ScoreJobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ScoreJobResponse{}, mapRepositoryError(err)
	}

	var levels []ScoredLevel
	if len(levelIDs) > 0 {
		levels, err = qtx.FindLevelsByIDs(ctx, levelIDs)
		if err != nil {
			return ScoreJobResponse{}, mapRepositoryError(err)
		}
	}
	if len(levels) != len(levelIDs) {
		return ScoreJobResponse{}, jobroleerrors.ErrFactorLevelNotFound
	}

	for _, lvl := range levels {
		if levelByFactor[lvl.FactorID] != lvl.LevelID {
			return ScoreJobResponse{}, jobroleerrors.ErrLevelFactorMismatch
		}
	}

	scores := make([]JobScore, len(levels))
	for i, lvl := range levels {
		scores[i] = JobScore{
			ID:            uuid.New(),
			JobRoleID:     role.ID,
			FactorLevelID: lvl.LevelID,
		}
	}

	totalPoints, gradeID := s.classify(ctx, levels)

	if err := qtx.ReplaceScores(ctx, role.ID, scores); err != nil {
		return ScoreJobResponse{}, mapRepositoryError(err)
	}

	if err := qtx.UpdateCachedFields(ctx, role.ID, totalPoints, gradeID); err != nil {
		return ScoreJobResponse{}, mapRepositoryError(err)
	}

	if err := s.queueRescoredEvent(ctx, tx, rid, role.ID, totalPoints, gradeID); err != nil {
		return ScoreJobResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ScoreJobResponse{}, err
	}

	s.logger.Info("job role scored",
		zap.String("request_id", rid),
		zap.String("job_role_id", role.ID.String()),
		zap.Float64("total_points", totalPoints),
	)

	return s.buildScoreResponse(ctx, role.ID, totalPoints, gradeID), nil
}

// Recalculate rebuilds the cached fields from the scores that remain, used
// after factor catalog edits invalidate part of a score set.
func (s *service) Recalculate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	levels, err := qtx.FindScoredLevels(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	totalPoints, gradeID := s.classify(ctx, levels)

	if err := qtx.UpdateCachedFields(ctx, role.ID, totalPoints, gradeID); err != nil {
		return mapRepositoryError(err)
	}

	rid := contextutil.GetRequestID(ctx)
	if err := s.queueRescoredEvent(ctx, tx, rid, role.ID, totalPoints, gradeID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("job role recalculated",
		zap.String("job_role_id", id),
		zap.Float64("total_points", totalPoints),
	)

	return nil
}

// classify computes the weighted total and resolves the band. An empty score
// set always yields zero points and no grade, even when some band starts at 0.
func (s *service) classify(ctx context.Context, levels []ScoredLevel) (float64, *uuid.UUID) {
	if len(levels) == 0 {
		return 0, nil
	}

	total := 0.0
	for _, lvl := range levels {
		total += lvl.Contribution()
	}

	grades, err := s.gradeRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("load grades for classification failed", zap.Error(err))
		return total, nil
	}

	if n := grade.CountMatches(grades, total); n > 1 {
		s.logger.Warn("overlapping grade ranges for job role total",
			zap.Float64("total_points", total),
			zap.Int("matches", n),
		)
	}

	if match := grade.ResolveFrom(grades, total); match != nil {
		gid := match.ID
		return total, &gid
	}
	return total, nil
}

func (s *service) queueRescoredEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	roleID uuid.UUID,
	totalPoints float64,
	gradeID *uuid.UUID,
) error {
	if s.outbox == nil {
		return nil
	}

	var gradeIDStr *string
	if gradeID != nil {
		v := gradeID.String()
		gradeIDStr = &v
	}

	event := events.JobRoleRescoredEvent{
		EventType:   "jobrole_rescored",
		RequestID:   rid,
		JobRoleID:   roleID.String(),
		TotalPoints: totalPoints,
		GradeID:     gradeIDStr,
		OccurredAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "job_role",
		AggregateID:   roleID.String(),
		EventType:     event.EventType,
		Topic:         events.JobRoleRescoredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue rescored event failed",
			zap.String("job_role_id", roleID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) buildScoreResponse(
	ctx context.Context,
	roleID uuid.UUID,
	totalPoints float64,
	gradeID *uuid.UUID,
) ScoreJobResponse {
	resp := ScoreJobResponse{
		JobRoleID:   roleID.String(),
		TotalPoints: totalPoints,
	}

	if gradeID != nil {
		v := gradeID.String()
		resp.GradeID = &v
		if grd, err := s.gradeRepo.FindByID(ctx, v); err == nil {
			resp.GradeName = &grd.Name
		}
	}

	return resp
}

func (s *service) mapToResponse(ctx context.Context, role JobRole) JobRoleResponse {
	resp := JobRoleResponse{
		ID:          role.ID.String(),
		Title:       role.Title,
		Department:  role.Department,
		TotalPoints: role.TotalPoints,
	}

	if role.GradeID != nil {
		v := role.GradeID.String()
		resp.GradeID = &v
		if grd, err := s.gradeRepo.FindByID(ctx, v); err == nil {
			resp.GradeName = &grd.Name
		}
	}

	return resp
}
