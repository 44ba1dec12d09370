package gradeerrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrGradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary grade not found",
		http.StatusNotFound,
	)
	ErrGradeNameTaken = apperror.New(
		apperror.CodeConflict,
		"a salary grade with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidPointRange = apperror.New(
		apperror.CodeInvalidInput,
		"min_points must be less than or equal to max_points",
		http.StatusBadRequest,
	)
	ErrInvalidPoints = apperror.New(
		apperror.CodeInvalidInput,
		"points must be a non-negative number",
		http.StatusBadRequest,
	)
)
