package jobrole

import (
	"errors"

	jobroleerrors "go-cargos-salarios/internal/jobrole/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jobroleerrors.ErrJobRoleNotFound
	}

	return err
}
