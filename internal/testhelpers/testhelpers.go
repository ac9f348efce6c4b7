package testhelpers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"techgear/database"
)

// Jeu de données chargé par LoadFixtures
const (
	FixtureProducts          = 6
	FixtureUncategorized     = 2
	FixtureCustomerWithOrder = 1
	FixtureCustomerNoOrder   = 2
	FixtureEmptyCategory     = 4
	FixtureMissingID         = 999
)

// Note: testhelpers ne dépend que du package database pour éviter les import cycles.
// Les tests construisent eux-mêmes leurs repositories à partir du handle retourné.

// SetupTestDB ouvre une base SQLite temporaire avec le schéma et les fixtures.
// La connexion est fermée automatiquement en fin de test.
func SetupTestDB(tb testing.TB) *database.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "techgear_test.db")
	return SetupDB(tb, database.Options{
		Driver:       database.DriverSQLite,
		DSN:          database.SQLiteDSN(path, 5*time.Second),
		QueryTimeout: 5 * time.Second,
	})
}

// SetupDB ouvre la base décrite par opts, applique le schéma, vide les tables
// et charge les fixtures
func SetupDB(tb testing.TB, opts database.Options) *database.DB {
	tb.Helper()

	ctx := context.Background()

	db, err := database.Open(ctx, opts)
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}
	tb.Cleanup(func() {
		_ = db.Close()
	})

	if err := database.ApplySchema(ctx, db); err != nil {
		tb.Fatalf("Failed to apply schema: %v", err)
	}
	if err := database.Truncate(ctx, db); err != nil {
		tb.Fatalf("Failed to clear tables: %v", err)
	}
	if err := LoadFixtures(ctx, db); err != nil {
		tb.Fatalf("Failed to load fixtures: %v", err)
	}

	return db
}

func str(s string) *string { return &s }

var (
	fixtureManufacturers = []database.Manufacturer{
		{ID: 1, Name: "TechCorp"},
		{ID: 2, Name: "GameGear"},
		{ID: 3, Name: "SoundWave"},
	}
	fixtureCategories = []database.Category{
		{ID: 1, Name: "Laptops"},
		{ID: 2, Name: "Accessories"},
		{ID: 3, Name: "Audio"},
		{ID: 4, Name: "Monitors"},
	}
	fixtureProducts = []database.Product{
		{ID: 1, ManufacturerID: 1, Name: "Ultra Laptop", Description: str("High-end laptop"), Price: 1200, StockQuantity: 10},
		{ID: 2, ManufacturerID: 1, Name: "Budget Laptop", Description: str("Entry-level laptop"), Price: 600, StockQuantity: 20},
		{ID: 3, ManufacturerID: 2, Name: "Wireless Mouse", Description: str("2.4GHz mouse"), Price: 25, StockQuantity: 100},
		{ID: 4, ManufacturerID: 3, Name: "Noise Cancelling Headphones", Price: 300, StockQuantity: 15},
		{ID: 5, ManufacturerID: 2, Name: "USB Cable", Description: str("1m USB-C cable"), Price: 5, StockQuantity: 500},
		{ID: 6, ManufacturerID: 2, Name: "Laptop Stand", Description: str("Aluminium stand"), Price: 40, StockQuantity: 30},
	}
	fixtureProductCategories = []database.ProductCategory{
		{ProductID: 1, CategoryID: 1},
		{ProductID: 2, CategoryID: 1},
		{ProductID: 3, CategoryID: 2},
		{ProductID: 4, CategoryID: 3},
	}
	fixtureCustomers = []database.Customer{
		{ID: 1, Name: "Anna Svensson", Email: str("anna@example.com"), Phone: str("0701234567"), Address: str("Storgatan 1")},
		{ID: 2, Name: "Erik Johansson", Email: str("erik@example.com")},
	}
	fixtureOrders = []database.Order{
		{ID: 1, CustomerID: 1, OrderDate: "2024-01-15"},
		{ID: 2, CustomerID: 1, OrderDate: "2024-02-20"},
	}
	fixtureReviews = []database.Review{
		{ID: 1, ProductID: 1, Rating: 5, Comment: str("Great")},
		{ID: 2, ProductID: 1, Rating: 4, Comment: str("Fast")},
		{ID: 3, ProductID: 3, Rating: 3, Comment: str("OK")},
	}
)

// Séquences PostgreSQL à recaler après insertion d'identifiants explicites
var serialColumns = [][2]string{
	{"manufacturers", "manufacturer_id"},
	{"categories", "category_id"},
	{"products", "product_id"},
	{"customers", "customer_id"},
	{"orders", "order_id"},
	{"reviews", "review_id"},
}

// LoadFixtures insère le jeu de données de référence dans une transaction
func LoadFixtures(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := insertFixtures(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if !db.Dialect().IsSQLite() {
		for _, col := range serialColumns {
			query := "SELECT setval(pg_get_serial_sequence('" + col[0] + "', '" + col[1] + "'), " +
				"(SELECT MAX(" + col[1] + ") FROM " + col[0] + "))"
			if _, err := tx.ExecContext(ctx, query); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}

	return tx.Commit()
}

// insertFixtures insère des copies : les identifiants explicites sont conservés
func insertFixtures(ctx context.Context, tx *sql.Tx) error {
	for _, m := range fixtureManufacturers {
		if err := database.InsertManufacturer(ctx, tx, &m); err != nil {
			return err
		}
	}
	for _, c := range fixtureCategories {
		if err := database.InsertCategory(ctx, tx, &c); err != nil {
			return err
		}
	}
	for _, p := range fixtureProducts {
		if err := database.InsertProduct(ctx, tx, &p); err != nil {
			return err
		}
	}
	for _, pc := range fixtureProductCategories {
		if err := database.InsertProductCategory(ctx, tx, pc); err != nil {
			return err
		}
	}
	for _, c := range fixtureCustomers {
		if err := database.InsertCustomer(ctx, tx, &c); err != nil {
			return err
		}
	}
	for _, o := range fixtureOrders {
		if err := database.InsertOrder(ctx, tx, &o); err != nil {
			return err
		}
	}
	for _, r := range fixtureReviews {
		if err := database.InsertReview(ctx, tx, &r); err != nil {
			return err
		}
	}
	return nil
}
