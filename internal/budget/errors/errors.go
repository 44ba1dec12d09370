package budgeterrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrPlanNotFound = apperror.New(
		apperror.CodeNotFound,
		"budget plan not found",
		http.StatusNotFound,
	)

	ErrYearTaken = apperror.New(
		apperror.CodeConflict,
		"a budget plan for this year already exists",
		http.StatusConflict,
	)

	ErrDuplicateDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"duplicate department in the same budget plan",
		http.StatusBadRequest,
	)

	ErrInvalidBudget = apperror.New(
		apperror.CodeInvalidInput,
		"planned budget must be a non-negative number",
		http.StatusBadRequest,
	)
)
