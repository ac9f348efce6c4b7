package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_GeneratedAndExplicitIDs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	explicit := Manufacturer{ID: 10, Name: "TechCorp"}
	require.NoError(t, InsertManufacturer(ctx, db, &explicit))
	assert.EqualValues(t, 10, explicit.ID)

	generated := Manufacturer{Name: "GameGear"}
	require.NoError(t, InsertManufacturer(ctx, db, &generated))
	assert.EqualValues(t, 11, generated.ID)

	category := Category{Name: "Laptops"}
	require.NoError(t, InsertCategory(ctx, db, &category))
	assert.NotZero(t, category.ID)

	product := Product{ManufacturerID: generated.ID, Name: "Webcam", Price: 59.5, StockQuantity: 3}
	require.NoError(t, InsertProduct(ctx, db, &product))
	require.NoError(t, InsertProductCategory(ctx, db, ProductCategory{ProductID: product.ID, CategoryID: category.ID}))

	var description sql.NullString
	require.NoError(t, db.QueryRow("SELECT description FROM products WHERE product_id = $1", product.ID).Scan(&description))
	assert.False(t, description.Valid)

	comment := "Sharp image"
	review := Review{ProductID: product.ID, Rating: 4, Comment: &comment}
	require.NoError(t, InsertReview(ctx, db, &review))

	customer := Customer{Name: "Anna Svensson"}
	require.NoError(t, InsertCustomer(ctx, db, &customer))
	order := Order{CustomerID: customer.ID, OrderDate: "2024-03-01"}
	require.NoError(t, InsertOrder(ctx, db, &order))

	assert.Equal(t, 1, count(t, db, "products_categories"))
	assert.Equal(t, 1, count(t, db, "reviews"))
	assert.Equal(t, 1, count(t, db, "orders"))
}

func TestInsert_Tx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	m := Manufacturer{Name: "SoundWave"}
	require.NoError(t, InsertManufacturer(ctx, tx, &m))
	require.NoError(t, tx.Rollback())

	assert.Equal(t, 0, count(t, db, "manufacturers"))
}

func TestInsert_ConstraintViolation(t *testing.T) {
	db := openTestDB(t)

	product := Product{ManufacturerID: 999, Name: "Orphan", Price: 1}
	assert.Error(t, InsertProduct(context.Background(), db, &product))
	assert.Zero(t, product.ID)
}
