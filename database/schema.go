package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Tables dans l'ordre de suppression (enfants avant parents)
var tablesInDeleteOrder = []string{
	"reviews",
	"orders",
	"products_categories",
	"products",
	"categories",
	"manufacturers",
	"customers",
}

// Schema retourne le DDL d'amorçage pour le dialecte
func Schema(d Dialect) (string, error) {
	name := "schema/postgres.sql"
	if d.IsSQLite() {
		name = "schema/sqlite.sql"
	}
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// ApplySchema crée les tables manquantes (CREATE ... IF NOT EXISTS) dans une transaction.
// Ce n'est pas un moteur de migrations : le schéma de production reste géré à l'extérieur.
func ApplySchema(ctx context.Context, db *DB) error {
	ddl, err := Schema(db.Dialect())
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}

	for i, stmt := range splitSQLStatements(ddl) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	log.Info().Str("driver", db.Dialect().DriverName()).Msg("Schema applied")
	return nil
}

// Truncate vide toutes les tables du catalogue
func Truncate(ctx context.Context, db *DB) error {
	for _, table := range tablesInDeleteOrder {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// splitSQLStatements découpe un script en instructions (le DDL ne contient pas de ';' littéral)
func splitSQLStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
