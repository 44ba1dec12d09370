package grid

import (
	"errors"

	griderrors "go-cargos-salarios/internal/grid/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return griderrors.ErrStepNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return griderrors.ErrStepNameTaken
	}

	return err
}
