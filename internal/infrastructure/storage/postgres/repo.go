package postgres

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stockd/internal/core/apperror"
)

// Postgres error codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Builder returns a squirrel builder with Postgres placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// TranslateError maps driver errors to application errors. Unmapped
// errors come back wrapped as database errors.
func TranslateError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(resource, key)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(resource, pgErr.ConstraintName, key)
		case pgForeignKeyViolation:
			return apperror.NewConflict("referenced row is missing or still in use").
				WithDetail("resource", resource).
				WithDetail("constraint", pgErr.ConstraintName)
		}
	}

	return apperror.NewDatabase(resource, err)
}
