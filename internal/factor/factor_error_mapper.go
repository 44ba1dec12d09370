package factor

import (
	"errors"
	"strings"

	factorerrors "go-cargos-salarios/internal/factor/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return factorerrors.ErrFactorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "idx_factor_level") {
			return factorerrors.ErrDuplicateLevel
		}
		return factorerrors.ErrFactorNameTaken
	}

	return err
}
