package griderrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrStepNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary step not found",
		http.StatusNotFound,
	)
	ErrStepNameTaken = apperror.New(
		apperror.CodeConflict,
		"a salary step with this name already exists",
		http.StatusConflict,
	)
	ErrGradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary grade not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrNoSteps = apperror.New(
		apperror.CodeInvalidState,
		"no salary steps are defined",
		http.StatusBadRequest,
	)
	ErrMissingBaseAmount = apperror.New(
		apperror.CodeInvalidInput,
		"grade has no first-step value; base_amount must be provided",
		http.StatusBadRequest,
	)
	ErrZeroPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage must be a non-zero number",
		http.StatusBadRequest,
	)
)
