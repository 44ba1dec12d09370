package employeeerrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)

	ErrJobRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"referenced job role not found",
		http.StatusNotFound,
	)

	ErrBenefitNotFound = apperror.New(
		apperror.CodeNotFound,
		"one or more referenced benefits do not exist",
		http.StatusNotFound,
	)

	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"salary must be a non-negative number",
		http.StatusBadRequest,
	)
)
