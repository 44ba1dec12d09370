package grid

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-cargos-salarios/internal/events"
	"go-cargos-salarios/internal/grade"
	griderrors "go-cargos-salarios/internal/grid/errors"
	"go-cargos-salarios/internal/messaging/kafka"
	"go-cargos-salarios/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultProgressionPct is applied when a row-generation request omits the
// progression percentage.
const DefaultProgressionPct = 5.0

var oneHundred = decimal.NewFromInt(100)

type Service interface {
	CreateStep(ctx context.Context, req CreateStepRequest) (StepResponse, error)
	GetSteps(ctx context.Context) ([]StepResponse, error)
	DeleteStep(ctx context.Context, id string) error
	UpsertCell(ctx context.Context, req UpsertCellRequest) (CellResponse, error)
	GenerateRow(ctx context.Context, gradeID string, req GenerateRowRequest) ([]CellResponse, error)
	ApplyGlobalIncrease(ctx context.Context, req GlobalIncreaseRequest) (GlobalIncreaseResponse, error)
	GetGrid(ctx context.Context) ([]GradeRowResponse, error)
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
	l := zap.L().Named("grid.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("grid.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		gradeRepo: gradeRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) CreateStep(
	ctx context.Context,
	req CreateStepRequest,
) (StepResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StepResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	step := &SalaryStep{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := qtx.CreateStep(ctx, step); err != nil {
		return StepResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return StepResponse{}, err
	}

	return StepResponse{ID: step.ID.String(), Name: step.Name}, nil
}

func (s *service) GetSteps(ctx context.Context) ([]StepResponse, error) {
	steps, err := s.repo.FindAllSteps(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]StepResponse, len(steps))
	for i, step := range steps {
		resp[i] = StepResponse{ID: step.ID.String(), Name: step.Name}
	}
	return resp, nil
}

func (s *service) DeleteStep(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindStepByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.DeleteStep(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func (s *service) UpsertCell(
	ctx context.Context,
	req UpsertCellRequest,
) (CellResponse, error) {
	if !req.Amount.IsPositive() {
		return CellResponse{}, griderrors.ErrInvalidAmount
	}

	grd, err := s.gradeRepo.FindByID(ctx, req.GradeID)
	if err != nil {
		return CellResponse{}, griderrors.ErrGradeNotFound
	}

	step, err := s.repo.FindStepByID(ctx, req.StepID)
	if err != nil {
		return CellResponse{}, mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CellResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cell := &SalaryGridCell{
		ID:      uuid.New(),
		GradeID: grd.ID,
		StepID:  step.ID,
		Amount:  req.Amount.Round(2),
	}

	if err := qtx.UpsertCell(ctx, cell); err != nil {
		return CellResponse{}, mapRepositoryError(err)
	}

	rid := contextutil.GetRequestID(ctx)
	if err := s.queueGridChangedEvent(ctx, tx, rid,
		events.GridCellUpserted, req.GradeID, 0, 1); err != nil {
		return CellResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CellResponse{}, err
	}

	return CellResponse{
		ID:       cell.ID.String(),
		GradeID:  cell.GradeID.String(),
		StepID:   cell.StepID.String(),
		StepName: step.Name,
		Amount:   cell.Amount,
	}, nil
}

// GenerateRow fills a grade's whole row from a first-step base using a
// compounding progression: amount(i) = base * (1 + p/100)^i over steps
// ordered by name ascending. Amounts are rounded to cents, half-up.
func (s *service) GenerateRow(
	ctx context.Context,
	gradeID string,
	req GenerateRowRequest,
) ([]CellResponse, error) {
	grd, err := s.gradeRepo.FindByID(ctx, gradeID)
	if err != nil {
		return nil, griderrors.ErrGradeNotFound
	}

	steps, err := s.repo.FindAllSteps(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(steps) == 0 {
		return nil, griderrors.ErrNoSteps
	}

	base, err := s.resolveBaseAmount(ctx, gradeID, steps[0].ID, req.BaseAmount)
	if err != nil {
		return nil, err
	}

	pct := DefaultProgressionPct
	if req.ProgressionPct != nil {
		pct = *req.ProgressionPct
	}
	factor := decimal.NewFromFloat(pct).Div(oneHundred).Add(decimal.NewFromInt(1))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	resp := make([]CellResponse, len(steps))
	amount := base
	for i, step := range steps {
		cell := &SalaryGridCell{
			ID:      uuid.New(),
			GradeID: grd.ID,
			StepID:  step.ID,
			Amount:  amount.Round(2),
		}

		if err := qtx.UpsertCell(ctx, cell); err != nil {
			return nil, mapRepositoryError(err)
		}

		resp[i] = CellResponse{
			ID:       cell.ID.String(),
			GradeID:  cell.GradeID.String(),
			StepID:   cell.StepID.String(),
			StepName: step.Name,
			Amount:   cell.Amount,
		}

		// compound on the unrounded value so long rows do not drift
		amount = amount.Mul(factor)
	}

	rid := contextutil.GetRequestID(ctx)
	if err := s.queueGridChangedEvent(ctx, tx, rid,
		events.GridRowGenerated, gradeID, pct, len(steps)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("grade row generated",
		zap.String("request_id", rid),
		zap.String("grade_id", gradeID),
		zap.Float64("progression_pct", pct),
		zap.Int("cells", len(resp)),
	)

	return resp, nil
}

// ApplyGlobalIncrease compounds pct onto every existing cell inside a single
// transaction. Applying x% then y% intentionally differs from (x+y)%.
func (s *service) ApplyGlobalIncrease(
	ctx context.Context,
	req GlobalIncreaseRequest,
) (GlobalIncreaseResponse, error) {
	if req.Percentage == nil || *req.Percentage == 0 {
		return GlobalIncreaseResponse{}, griderrors.ErrZeroPercentage
	}
	pct := *req.Percentage

	cells, err := s.repo.FindAllCells(ctx)
	if err != nil {
		return GlobalIncreaseResponse{}, mapRepositoryError(err)
	}

	multiplier := decimal.NewFromFloat(pct).Div(oneHundred).Add(decimal.NewFromInt(1))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GlobalIncreaseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	for _, cell := range cells {
		updated := cell.Amount.Mul(multiplier).Round(2)
		if err := qtx.UpdateCellAmount(ctx, cell.ID, updated); err != nil {
			return GlobalIncreaseResponse{}, mapRepositoryError(err)
		}
	}

	rid := contextutil.GetRequestID(ctx)
	if err := s.queueGridChangedEvent(ctx, tx, rid,
		events.GridIncreaseApplied, "", pct, len(cells)); err != nil {
		return GlobalIncreaseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return GlobalIncreaseResponse{}, err
	}

	s.logger.Info("global increase applied",
		zap.String("request_id", rid),
		zap.Float64("percentage", pct),
		zap.Int("cells_updated", len(cells)),
	)

	return GlobalIncreaseResponse{
		Percentage:   pct,
		CellsUpdated: len(cells),
	}, nil
}

func (s *service) GetGrid(ctx context.Context) ([]GradeRowResponse, error) {
	grades, err := s.gradeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cells, err := s.repo.FindAllCells(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	cellsByGrade := make(map[uuid.UUID][]CellResponse)
	for _, cell := range cells {
		cellsByGrade[cell.GradeID] = append(cellsByGrade[cell.GradeID], CellResponse{
			ID:       cell.ID.String(),
			GradeID:  cell.GradeID.String(),
			StepID:   cell.StepID.String(),
			StepName: cell.StepName,
			Amount:   cell.Amount,
		})
	}

	resp := make([]GradeRowResponse, len(grades))
	for i, grd := range grades {
		resp[i] = GradeRowResponse{
			GradeID:   grd.ID.String(),
			GradeName: grd.Name,
			Cells:     cellsByGrade[grd.ID],
		}
	}
	return resp, nil
}

func (s *service) resolveBaseAmount(
	ctx context.Context,
	gradeID string,
	firstStepID uuid.UUID,
	override *decimal.Decimal,
) (decimal.Decimal, error) {
	if override != nil {
		if !override.IsPositive() {
			return decimal.Zero, griderrors.ErrInvalidAmount
		}
		return *override, nil
	}

	// no explicit base: fall back to the existing first-step cell, never to
	// a silent zero
	existing, err := s.repo.FindCellsByGrade(ctx, gradeID)
	if err != nil {
		return decimal.Zero, mapRepositoryError(err)
	}
	for _, cell := range existing {
		if cell.StepID == firstStepID {
			return cell.Amount, nil
		}
	}

	return decimal.Zero, griderrors.ErrMissingBaseAmount
}

// queueGridChangedEvent records any grid mutation in the outbox so the
// consumer can drop the cached simulation. Queued inside the mutation's tx:
// no event without the change, no change without the event.
func (s *service) queueGridChangedEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	eventType string,
	gradeID string,
	pct float64,
	cells int,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.GridChangedEvent{
		EventType:     eventType,
		RequestID:     rid,
		GradeID:       gradeID,
		Percentage:    pct,
		CellsAffected: cells,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	aggregateID := gradeID
	if aggregateID == "" {
		aggregateID = uuid.NewString()
	}

	outboxRepo := s.outbox.WithTx(tx)
	return outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "salary_grid",
		AggregateID:   aggregateID,
		EventType:     event.EventType,
		Topic:         events.GridChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
