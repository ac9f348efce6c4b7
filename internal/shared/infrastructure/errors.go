package infrastructure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"techgear/internal/shared/domain"
)

// Codes SQLSTATE PostgreSQL
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgNumericOutOfRange   = "22003"
	pgStringTooLong       = "22001"
)

// ClassifyError traduit une erreur de driver en erreur de domaine.
// Les erreurs non reconnues sont retournées telles quelles.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if sentinel := sentinelFor(err); sentinel != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}

func sentinelFor(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return sentinelForSQLState(string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return sentinelForSQLState(pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return sentinelForSQLite(liteErr)
	}

	return nil
}

func sentinelForSQLState(code string) error {
	switch code {
	case pgForeignKeyViolation:
		return domain.ErrInvalidReference
	case pgUniqueViolation:
		return domain.ErrConflict
	case pgNotNullViolation, pgCheckViolation, pgInvalidText, pgNumericOutOfRange, pgStringTooLong:
		return domain.ErrInvalidInput
	}
	return nil
}

func sentinelForSQLite(err *sqlite.Error) error {
	switch err.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return domain.ErrInvalidReference
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return domain.ErrConflict
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_MISMATCH:
		return domain.ErrInvalidInput
	}

	// code étendu absent : on se rabat sur le message
	if err.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return domain.ErrInvalidReference
		case strings.Contains(msg, "UNIQUE"), strings.Contains(msg, "PRIMARY KEY"):
			return domain.ErrConflict
		default:
			return domain.ErrInvalidInput
		}
	}
	return nil
}
