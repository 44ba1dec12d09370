package taxsettingerrors

import (
	"net/http"

	"go-cargos-salarios/internal/shared/apperror"
)

var (
	ErrTaxSettingNotFound = apperror.New(
		apperror.CodeNotFound,
		"tax setting not found",
		http.StatusNotFound,
	)
	ErrTaxKeyTaken = apperror.New(
		apperror.CodeConflict,
		"a tax setting with this key already exists",
		http.StatusConflict,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"category must be CLT or PJ",
		http.StatusBadRequest,
	)
)
