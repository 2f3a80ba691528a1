package database

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Constraint classifies a driver error by the constraint it violated.
type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintCheck
	ConstraintNotNull
)

// postgres SQLSTATE codes, class 23 (integrity constraint violation)
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgNumericOutOfRange   = "22003"
)

func Classify(err error) Constraint {
	if err == nil {
		return ConstraintNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ConstraintUnique
		case pgForeignKeyViolation:
			return ConstraintForeignKey
		case pgCheckViolation, pgNumericOutOfRange:
			return ConstraintCheck
		case pgNotNullViolation:
			return ConstraintNotNull
		}
		return ConstraintNone
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ConstraintUnique
		case sqlite3.ErrConstraintForeignKey:
			return ConstraintForeignKey
		case sqlite3.ErrConstraintCheck:
			return ConstraintCheck
		case sqlite3.ErrConstraintNotNull:
			return ConstraintNotNull
		}
	}
	return ConstraintNone
}

func IsUniqueViolation(err error) bool {
	return Classify(err) == ConstraintUnique
}

func IsForeignKeyViolation(err error) bool {
	return Classify(err) == ConstraintForeignKey
}

func IsCheckViolation(err error) bool {
	return Classify(err) == ConstraintCheck
}

// WriteError maps a constraint violation raised by an insert or update onto
// the apperror values. Other errors pass through unchanged.
func WriteError(err error) error {
	switch Classify(err) {
	case ConstraintUnique:
		return fmt.Errorf("%w: %v", apperror.ErrDuplicate, err)
	case ConstraintForeignKey:
		return fmt.Errorf("%w: %v", apperror.ErrInvalidReference, err)
	case ConstraintCheck, ConstraintNotNull:
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	return err
}

// DeleteError maps a foreign key violation raised by a delete to
// apperror.ErrProtected.
func DeleteError(err error) error {
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", apperror.ErrProtected, err)
	}
	return err
}
