package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"techgear/database"
)

// Executor interface commune à *sql.DB et *sql.Tx
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UnitOfWork gère les transactions pour les opérations d'écriture
type UnitOfWork interface {
	Begin(ctx context.Context) (*sql.Tx, error)
	Commit(tx *sql.Tx) error
	Rollback(tx *sql.Tx) error
	ExecuteContext(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// DBUnitOfWork implémentation de UnitOfWork avec database.DB
type DBUnitOfWork struct {
	db *database.DB
}

// NewUnitOfWork crée une nouvelle instance de UnitOfWork
func NewUnitOfWork(db *database.DB) UnitOfWork {
	return &DBUnitOfWork{db: db}
}

// Begin démarre une transaction
func (uow *DBUnitOfWork) Begin(ctx context.Context) (*sql.Tx, error) {
	return uow.db.BeginTx(ctx, nil)
}

// Commit valide une transaction
func (uow *DBUnitOfWork) Commit(tx *sql.Tx) error {
	return tx.Commit()
}

// Rollback annule une transaction
func (uow *DBUnitOfWork) Rollback(tx *sql.Tx) error {
	return tx.Rollback()
}

// ExecuteContext exécute fn dans une transaction.
// Rollback si fn retourne une erreur ou panique, commit sinon.
func (uow *DBUnitOfWork) ExecuteContext(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback(tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := uow.Rollback(tx); rbErr != nil {
			log.Error().Err(rbErr).Msg("Transaction rollback failed")
		}
		return err
	}

	if err := uow.Commit(tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// BaseRepository structure de base pour les repositories
type BaseRepository struct {
	db *database.DB
	tx *sql.Tx
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(db *database.DB) BaseRepository {
	return BaseRepository{db: db}
}

// WithTx retourne une copie du repository qui exécute dans la transaction
func (r BaseRepository) WithTx(tx *sql.Tx) BaseRepository {
	r.tx = tx
	return r
}

// Dialect retourne le dialecte SQL de la connexion
func (r *BaseRepository) Dialect() database.Dialect {
	return r.db.Dialect()
}

// Executor retourne l'exécuteur approprié (DB ou Tx)
func (r *BaseRepository) Executor() Executor {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// WithTimeout borne la durée d'une opération au délai configuré
func (r *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.db.QueryTimeout()
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Query exécute une requête de lecture
func (r *BaseRepository) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	trace(query, args)
	return r.Executor().QueryContext(ctx, query, args...)
}

// QueryRow exécute une requête de lecture pour une seule ligne
func (r *BaseRepository) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	trace(query, args)
	return r.Executor().QueryRowContext(ctx, query, args...)
}

// Exec exécute une requête d'écriture
func (r *BaseRepository) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	trace(query, args)
	return r.Executor().ExecContext(ctx, query, args...)
}

func trace(query string, args []any) {
	log.Trace().Str("sql", query).Interface("args", args).Msg("SQL")
}
