package jobroleerrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrJobRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"job role not found",
		http.StatusNotFound,
	)
	ErrFactorLevelNotFound = apperror.New(
		apperror.CodeNotFound,
		"one or more referenced factor levels do not exist",
		http.StatusNotFound,
	)
	ErrLevelFactorMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"factor level does not belong to the given factor",
		http.StatusBadRequest,
	)
	ErrInvalidFactorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid factor id",
		http.StatusBadRequest,
	)
	ErrInvalidLevelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid factor level id",
		http.StatusBadRequest,
	)
)
