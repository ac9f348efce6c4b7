package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear/internal/shared/domain"
	"techgear/internal/testhelpers"
)

func TestClassifyError_Postgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pq foreign key", &pq.Error{Code: "23503"}, domain.ErrInvalidReference},
		{"pq unique", &pq.Error{Code: "23505"}, domain.ErrConflict},
		{"pq not null", &pq.Error{Code: "23502"}, domain.ErrInvalidInput},
		{"pgx check", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidInput},
		{"pgx unique wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ClassifyError(tt.err), tt.want)
		})
	}
}

func TestClassifyError_Passthrough(t *testing.T) {
	assert.NoError(t, ClassifyError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, ClassifyError(plain))

	syntax := &pq.Error{Code: "42601"}
	assert.Equal(t, error(syntax), ClassifyError(syntax))
}

func TestClassifyError_SQLite(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO categories (category_id, name) VALUES (1, 'Dup')")
	assert.ErrorIs(t, ClassifyError(err), domain.ErrConflict)

	_, err = db.ExecContext(ctx, "INSERT INTO orders (customer_id, order_date) VALUES (999, '2024-01-01')")
	assert.ErrorIs(t, ClassifyError(err), domain.ErrInvalidReference)

	_, err = db.ExecContext(ctx, "INSERT INTO reviews (product_id, rating) VALUES (1, 9)")
	assert.ErrorIs(t, ClassifyError(err), domain.ErrInvalidInput)

	_, err = db.ExecContext(ctx, "INSERT INTO customers (name) VALUES (NULL)")
	assert.ErrorIs(t, ClassifyError(err), domain.ErrInvalidInput)
}

func TestUnitOfWork_ExecuteContext(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	countManufacturers := func() int {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM manufacturers").Scan(&n))
		return n
	}
	before := countManufacturers()

	t.Run("commit", func(t *testing.T) {
		err := uow.ExecuteContext(ctx, func(tx *sql.Tx) error {
			repo := NewBaseRepository(db).WithTx(tx)
			_, err := repo.Exec(ctx, "INSERT INTO manufacturers (name) VALUES ($1)", "Committed")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, before+1, countManufacturers())
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := uow.ExecuteContext(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO manufacturers (name) VALUES ('RolledBack')"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, before+1, countManufacturers())
	})

	t.Run("rollback on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = uow.ExecuteContext(ctx, func(tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, "INSERT INTO manufacturers (name) VALUES ('Panicked')")
				panic("unexpected")
			})
		})
		assert.Equal(t, before+1, countManufacturers())
	})
}

func TestBaseRepository_WithTimeout(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewBaseRepository(db)

	ctx, cancel := repo.WithTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(db.QueryTimeout()), deadline, time.Second)
}
