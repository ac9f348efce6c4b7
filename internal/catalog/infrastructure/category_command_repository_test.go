package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear/internal/catalog/domain"
	shareddomain "techgear/internal/shared/domain"
	"techgear/internal/testhelpers"
)

func TestCategoryCommandRepository_Rename(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	categories := NewCategoryCommandRepository(db)
	products := NewProductQueryRepository(db)
	ctx := context.Background()

	before, err := products.FindByCategory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, before, 2)

	changes, err := categories.Rename(ctx, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	after, err := products.FindByCategory(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	old, err := products.FindByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, old)

	var orphans int
	require.NoError(t, db.QueryRow(`
		SELECT COUNT(*) FROM products_categories pc
		LEFT JOIN categories c ON c.category_id = pc.category_id
		WHERE c.category_id IS NULL
	`).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestCategoryCommandRepository_Rename_Conflict(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	categories := NewCategoryCommandRepository(db)
	products := NewProductQueryRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		oldID, newID domain.CategoryID
	}{
		{"target already used", 2, 3},
		{"same id", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := categories.Rename(ctx, tt.oldID, tt.newID)
			assert.ErrorIs(t, err, domain.ErrCategoryConflict)
			assert.ErrorIs(t, err, shareddomain.ErrConflict)

			// rien n'a bougé
			accessories, err := products.FindByCategory(ctx, 2)
			require.NoError(t, err)
			require.Len(t, accessories, 1)
			assert.Equal(t, "Wireless Mouse", accessories[0].Name)

			audio, err := products.FindByCategory(ctx, 3)
			require.NoError(t, err)
			assert.Len(t, audio, 1)
		})
	}
}

func TestCategoryCommandRepository_Rename_NotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	categories := NewCategoryCommandRepository(db)

	_, err := categories.Rename(context.Background(), testhelpers.FixtureMissingID, 12)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories WHERE category_id = 12").Scan(&count))
	assert.Zero(t, count)
}

func TestCategoryCommandRepository_Rename_WithoutCascade(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	categories := NewCategoryCommandRepository(db)
	products := NewProductQueryRepository(db)
	ctx := context.Background()

	// table de liaison sans ON UPDATE CASCADE sur category_id
	for _, stmt := range []string{
		"CREATE TABLE products_categories_copy AS SELECT product_id, category_id FROM products_categories",
		"DROP TABLE products_categories",
		`CREATE TABLE products_categories (
			product_id INTEGER NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
			category_id INTEGER NOT NULL,
			CONSTRAINT products_categories_product_key UNIQUE (product_id)
		)`,
		"INSERT INTO products_categories (product_id, category_id) SELECT product_id, category_id FROM products_categories_copy",
		"DROP TABLE products_categories_copy",
	} {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	changes, err := categories.Rename(ctx, 1, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	moved, err := products.FindByCategory(ctx, 21)
	require.NoError(t, err)
	assert.Len(t, moved, 2)

	var stale int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products_categories WHERE category_id = 1").Scan(&stale))
	assert.Zero(t, stale)
}
