package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"parts-dispatch/internal/apperr"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsCheckViolation - signals that a CHECK constraint rejected the row.
func IsCheckViolation(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23514"
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, apperr.ErrNotFound)
}

// wrapGet maps pgx.ErrNoRows onto apperr.ErrNotFound.
func wrapGet(err error, entity string, id int64) error {
	if IsNotFound(err) {
		return notFound(entity, id)
	}
	return fmt.Errorf("get %s %d: %w", entity, id, err)
}
