package benefiterrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrBenefitNotFound = apperror.New(
		apperror.CodeNotFound,
		"benefit not found",
		http.StatusNotFound,
	)

	ErrBenefitNameTaken = apperror.New(
		apperror.CodeConflict,
		"a benefit with this name already exists",
		http.StatusConflict,
	)

	ErrInvalidBenefitValue = apperror.New(
		apperror.CodeInvalidInput,
		"benefit value must be a non-negative number",
		http.StatusBadRequest,
	)
)
