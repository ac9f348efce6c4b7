//go:build integration

package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"techgear/database"
)

// PostgresDSN retourne TEST_POSTGRES_DSN si défini, sinon démarre un conteneur
// PostgreSQL arrêté en fin de test
func PostgresDSN(tb testing.TB) string {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	if dsn := getEnv("TEST_POSTGRES_DSN", ""); dsn != "" {
		return dsn
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		getEnv("TEST_POSTGRES_IMAGE", "postgres:16-alpine"),
		postgres.WithDatabase("techgear"),
		postgres.WithUsername("techgear"),
		postgres.WithPassword("techgear"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		tb.Skipf("PostgreSQL container not available: %v", err)
	}
	tb.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			tb.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("Failed to get connection string: %v", err)
	}
	return dsn
}

// SetupPostgresDB ouvre la base PostgreSQL avec le driver demandé (postgres ou pgx),
// schéma et fixtures chargés
func SetupPostgresDB(tb testing.TB, dsn, driver string) *database.DB {
	tb.Helper()

	return SetupDB(tb, database.Options{
		Driver:       driver,
		DSN:          dsn,
		QueryTimeout: 10 * time.Second,
	})
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
