package employee

import (
	"context"
	"database/sql"
	"errors"

	"go-cargos-salarios/internal/benefit"
	employeeerrors "go-cargos-salarios/internal/employee/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	ReplaceBenefits(ctx context.Context, id string, req ReplaceBenefitsRequest) (EmployeeResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if req.Salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	jobRoleID, err := s.resolveJobRoleID(ctx, req.JobRoleID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	benefitIDs, err := s.resolveBenefitIDs(ctx, req.BenefitIDs)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		ID:         uuid.New(),
		Name:       req.Name,
		Salary:     *req.Salary,
		HiringType: req.HiringType,
		JobRoleID:  jobRoleID,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if len(benefitIDs) > 0 {
		if err := qtx.ReplaceBenefits(ctx, emp.ID, benefitIDs); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return s.GetByID(ctx, emp.ID.String())
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = mapToResponse(emp)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	if req.Salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	jobRoleID, err := s.resolveJobRoleID(ctx, req.JobRoleID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.Name = req.Name
	emp.Salary = *req.Salary
	emp.HiringType = req.HiringType
	emp.JobRoleID = jobRoleID

	if err := qtx.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return s.GetByID(ctx, id)
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

// ReplaceBenefits rewrites the employee's whole benefit set in one
// transaction. Any benefit omitted from the request is unlinked.
func (s *service) ReplaceBenefits(
	ctx context.Context,
	id string,
	req ReplaceBenefitsRequest,
) (EmployeeResponse, error) {
	benefitIDs, err := s.resolveBenefitIDs(ctx, req.BenefitIDs)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := qtx.ReplaceBenefits(ctx, emp.ID, benefitIDs); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return s.GetByID(ctx, id)
}

func (s *service) resolveJobRoleID(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	exists, err := s.repo.JobRoleExists(ctx, *raw)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !exists {
		return nil, employeeerrors.ErrJobRoleNotFound
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, employeeerrors.ErrJobRoleNotFound
	}
	return &id, nil
}

func (s *service) resolveBenefitIDs(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	count, err := s.repo.CountBenefits(ctx, raw)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if count != int64(len(raw)) {
		return nil, employeeerrors.ErrBenefitNotFound
	}

	ids := make([]uuid.UUID, len(raw))
	for i, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, employeeerrors.ErrBenefitNotFound
		}
		ids[i] = id
	}
	return ids, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	return err
}

func mapToResponse(emp Employee) EmployeeResponse {
	benefits := make([]benefit.BenefitResponse, len(emp.Benefits))
	for i, b := range emp.Benefits {
		benefits[i] = benefit.BenefitResponse{
			ID:    b.ID.String(),
			Name:  b.Name,
			Type:  b.Type,
			Value: b.Value,
		}
	}

	var jobRoleID *string
	if emp.JobRoleID != nil {
		value := emp.JobRoleID.String()
		jobRoleID = &value
	}

	return EmployeeResponse{
		ID:         emp.ID.String(),
		Name:       emp.Name,
		Salary:     emp.Salary,
		HiringType: emp.HiringType,
		JobRoleID:  jobRoleID,
		Benefits:   benefits,
	}
}
