package factorerrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrFactorNotFound = apperror.New(
		apperror.CodeNotFound,
		"factor not found",
		http.StatusNotFound,
	)
	ErrFactorNameTaken = apperror.New(
		apperror.CodeConflict,
		"a factor with this name already exists",
		http.StatusConflict,
	)
	ErrDuplicateLevel = apperror.New(
		apperror.CodeConflict,
		"duplicate level ordinal for the same factor",
		http.StatusConflict,
	)
	ErrInvalidWeight = apperror.New(
		apperror.CodeInvalidInput,
		"factor weight must be greater than zero",
		http.StatusBadRequest,
	)
)
