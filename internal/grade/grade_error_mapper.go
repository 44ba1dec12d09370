package grade

import (
	"errors"

	gradeerrors "go-cargos-salarios/internal/grade/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gradeerrors.ErrGradeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return gradeerrors.ErrGradeNameTaken
	}

	return err
}
