package repository

import (
	"errors"

	"leisure-booking-api/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrKind maps low-level postgres error codes to repository error kinds.
func pgErrKind(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.KindDuplicateKey
		case "23503":
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}
