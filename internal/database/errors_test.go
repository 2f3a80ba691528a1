package database_test

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want database.Constraint
	}{
		{"nil", nil, database.ConstraintNone},
		{"plain", errors.New("boom"), database.ConstraintNone},
		{"pg unique", &pgconn.PgError{Code: "23505"}, database.ConstraintUnique},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, database.ConstraintForeignKey},
		{"pg check", &pgconn.PgError{Code: "23514"}, database.ConstraintCheck},
		{"pg numeric overflow", &pgconn.PgError{Code: "22003"}, database.ConstraintCheck},
		{"pg not null", &pgconn.PgError{Code: "23502"}, database.ConstraintNotNull},
		{"pg other", &pgconn.PgError{Code: "42P01"}, database.ConstraintNone},
		{"wrapped pg", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), database.ConstraintUnique},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, database.ConstraintUnique},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, database.ConstraintUnique},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, database.ConstraintForeignKey},
		{"sqlite check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, database.ConstraintCheck},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, database.ConstraintNotNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt.Assert(t, database.Classify(tt.err), qt.Equals, tt.want)
		})
	}
}

func TestWriteError(t *testing.T) {
	c := qt.New(t)

	c.Assert(database.WriteError(nil), qt.IsNil)

	plain := errors.New("boom")
	c.Assert(database.WriteError(plain), qt.Equals, plain)

	c.Assert(errors.Is(database.WriteError(&pgconn.PgError{Code: "23505"}), apperror.ErrDuplicate), qt.IsTrue)
	c.Assert(errors.Is(database.WriteError(&pgconn.PgError{Code: "23503"}), apperror.ErrInvalidReference), qt.IsTrue)
	c.Assert(errors.Is(database.WriteError(&pgconn.PgError{Code: "23514"}), apperror.ErrValidation), qt.IsTrue)
}

func TestDeleteError(t *testing.T) {
	c := qt.New(t)

	c.Assert(database.DeleteError(nil), qt.IsNil)
	err := database.DeleteError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})
	c.Assert(errors.Is(err, apperror.ErrProtected), qt.IsTrue)
}
