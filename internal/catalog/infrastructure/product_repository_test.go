package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear/internal/catalog/domain"
	shareddomain "techgear/internal/shared/domain"
	"techgear/internal/testhelpers"
)

func ptr[T any](v T) *T {
	return &v
}

func validInput() domain.ProductInput {
	return domain.ProductInput{
		Name:           ptr("Mechanical Keyboard"),
		Description:    ptr("RGB keyboard"),
		Price:          ptr(89.9),
		StockQuantity:  ptr(42),
		ManufacturerID: ptr(domain.ManufacturerID(2)),
	}
}

// ========================================
// Lectures
// ========================================

func TestProductQueryRepository_FindAll(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewProductQueryRepository(db)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, testhelpers.FixtureProducts)

	first := products[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Ultra Laptop", first.Name)
	assert.Equal(t, "TechCorp", first.Manufacturer)
	assert.InDelta(t, 1200.0, first.Price, 0.001)
	require.NotNil(t, first.Category)
	assert.Equal(t, "Laptops", *first.Category)

	// Produit sans catégorie : category NULL
	assert.Nil(t, products[4].Category)
	assert.Equal(t, "USB Cable", products[4].Name)
}

func TestProductQueryRepository_FindByID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewProductQueryRepository(db)

	product, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Noise Cancelling Headphones", product.Name)
	assert.Nil(t, product.Description)
	assert.Equal(t, "SoundWave", product.Manufacturer)

	_, err = repo.FindByID(context.Background(), testhelpers.FixtureMissingID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, err, shareddomain.ErrNotFound)
}

func TestProductQueryRepository_SearchByName(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewProductQueryRepository(db)

	tests := []struct {
		name     string
		fragment string
		want     []string
	}{
		{"case insensitive", "LAPTOP", []string{"Ultra Laptop", "Budget Laptop", "Laptop Stand"}},
		{"substring", "cable", []string{"USB Cable"}},
		{"no match", "tablet", []string{}},
		{"wildcards are literal", "%", []string{}},
		{"underscore is literal", "_", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.SearchByName(context.Background(), tt.fragment)
			require.NoError(t, err)
			require.NotNil(t, products)

			names := make([]string, 0, len(products))
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestProductQueryRepository_FindByCategory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewProductQueryRepository(db)

	products, err := repo.FindByCategory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		require.NotNil(t, p.Category)
		assert.Equal(t, "Laptops", *p.Category)
	}

	empty, err := repo.FindByCategory(context.Background(), testhelpers.FixtureEmptyCategory)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

// ========================================
// Écritures
// ========================================

func TestProductCommandRepository_Create(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	commands := NewProductCommandRepository(db)
	queries := NewProductQueryRepository(db)
	ctx := context.Background()

	id, err := commands.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Greater(t, int64(id), int64(testhelpers.FixtureProducts))

	created, err := queries.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", created.Name)
	assert.Equal(t, "GameGear", created.Manufacturer)
	assert.Equal(t, 42, created.StockQuantity)
	assert.Nil(t, created.Category)
}

func TestProductCommandRepository_Create_ConstraintViolations(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	commands := NewProductCommandRepository(db)
	queries := NewProductQueryRepository(db)
	ctx := context.Background()

	unknownManufacturer := validInput()
	unknownManufacturer.ManufacturerID = ptr(domain.ManufacturerID(testhelpers.FixtureMissingID))

	missingName := validInput()
	missingName.Name = nil

	negativePrice := validInput()
	negativePrice.Price = ptr(-1.0)

	tests := []struct {
		name  string
		input domain.ProductInput
		want  error
	}{
		{"unknown manufacturer", unknownManufacturer, shareddomain.ErrInvalidReference},
		{"missing name", missingName, shareddomain.ErrInvalidInput},
		{"negative price", negativePrice, shareddomain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.Create(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	// aucune ligne insérée
	products, err := queries.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, testhelpers.FixtureProducts)
}

func TestProductCommandRepository_Update(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	commands := NewProductCommandRepository(db)
	queries := NewProductQueryRepository(db)
	ctx := context.Background()

	t.Run("scalar fields only", func(t *testing.T) {
		result, err := commands.Update(ctx, 3, validInput(), nil)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateResult{ProductUpdated: 1}, result)

		p, err := queries.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Mechanical Keyboard", p.Name)
		require.NotNil(t, p.Category)
		assert.Equal(t, "Accessories", *p.Category)
	})

	t.Run("existing association is updated", func(t *testing.T) {
		result, err := commands.Update(ctx, 1, validInput(), ptr(domain.CategoryID(2)))
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateResult{ProductUpdated: 1, CategoryUpdated: 1}, result)

		p, err := queries.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Accessories", *p.Category)
	})

	t.Run("missing association is inserted once", func(t *testing.T) {
		result, err := commands.Update(ctx, 5, validInput(), ptr(domain.CategoryID(2)))
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateResult{ProductUpdated: 1, CategoryInserted: 1}, result)

		// deuxième appel : mise à jour de la même ligne
		result, err = commands.Update(ctx, 5, validInput(), ptr(domain.CategoryID(3)))
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateResult{ProductUpdated: 1, CategoryUpdated: 1}, result)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products_categories WHERE product_id = 5").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := commands.Update(ctx, testhelpers.FixtureMissingID, validInput(), ptr(domain.CategoryID(1)))
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products_categories WHERE product_id = $1",
			testhelpers.FixtureMissingID).Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("unknown category rolls back the product update", func(t *testing.T) {
		in := validInput()
		in.Name = ptr("Should Not Persist")

		_, err := commands.Update(ctx, 6, in, ptr(domain.CategoryID(testhelpers.FixtureMissingID)))
		assert.ErrorIs(t, err, shareddomain.ErrInvalidReference)

		p, err := queries.FindByID(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, "Laptop Stand", p.Name)
		assert.Nil(t, p.Category)
	})
}

func TestProductCommandRepository_Delete(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	commands := NewProductCommandRepository(db)
	queries := NewProductQueryRepository(db)
	ctx := context.Background()

	deleted, err := commands.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = queries.FindByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// avis et association supprimés en cascade
	var reviews, links int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM reviews WHERE product_id = 1").Scan(&reviews))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products_categories WHERE product_id = 1").Scan(&links))
	assert.Zero(t, reviews)
	assert.Zero(t, links)

	_, err = commands.Delete(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ========================================
// Benchmarks
// ========================================

func BenchmarkProductQueryRepository_FindAll(b *testing.B) {
	db := testhelpers.SetupTestDB(b)
	repo := NewProductQueryRepository(db)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := repo.FindAll(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
