// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/example/resale/internal/core/apperr"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// staleWrite explains a guarded UPDATE that matched no row: the row is gone
// (NotFound) or its column moved on since it was read (Conflict).
func staleWrite(ctx context.Context, q queryer, op, table, entity, column, id, expected string) error {
	var current string
	err := q.QueryRowContext(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", column, table), id).Scan(&current)
	if err == sql.ErrNoRows {
		return apperr.NotFound(op, entity, id)
	}
	if err != nil {
		return apperr.Storage(op, err)
	}
	return apperr.New(op, apperr.ErrConflict, id, "%s %s is %s, expected %s", entity, column, current, expected)
}

// classify maps a driver error onto an apperr kind.
func classify(op, id string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return apperr.Wrap(op, apperr.ErrConflict, id, err)
		case sqlite3.ErrConstraintForeignKey:
			return apperr.Wrap(op, apperr.ErrNotFound, id, err)
		case sqlite3.ErrConstraintCheck:
			return apperr.Wrap(op, apperr.ErrValidation, id, err)
		}
	}
	return apperr.Storage(op, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
