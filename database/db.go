package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Valeurs par défaut du pool de connexions
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultQueryTimeout    = 5 * time.Second
)

// Options paramètres d'ouverture de la base
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

// DB connexion à la base, ouverte au démarrage et fermée à l'arrêt par son propriétaire
type DB struct {
	*sql.DB
	dialect      Dialect
	queryTimeout time.Duration
}

// Open ouvre la connexion, configure le pool et vérifie la base avec un ping
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("empty data source name for driver %q", opts.Driver)
	}

	conn, err := sql.Open(dialect.DriverName(), opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenConns
	}
	maxIdle := opts.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}
	lifetime := opts.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = DefaultConnMaxLifetime
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxIdle)
	conn.SetConnMaxLifetime(lifetime)

	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug().
		Str("driver", dialect.DriverName()).
		Int("max_open_conns", maxOpen).
		Dur("query_timeout", timeout).
		Msg("Database connection established")

	return &DB{
		DB:           conn,
		dialect:      dialect,
		queryTimeout: timeout,
	}, nil
}

// Dialect retourne le dialecte SQL de la connexion
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// QueryTimeout retourne le délai maximal accordé à une requête
func (db *DB) QueryTimeout() time.Duration {
	return db.queryTimeout
}

// Close ferme la connexion (sans effet sur un handle nil)
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}
