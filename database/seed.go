package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// SeedOptions volumes de données à générer
type SeedOptions struct {
	Manufacturers int
	Categories    int
	Products      int
	Customers     int
	Orders        int
	Reviews       int
	// Part des produits rattachés à une catégorie (0..1), le reste tombe dans "Uncategorized"
	CategorizedRatio float64
	RandomSeed       int64
}

// DefaultSeedOptions volumes raisonnables pour une base de démonstration
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		Manufacturers:    8,
		Categories:       6,
		Products:         60,
		Customers:        40,
		Orders:           120,
		Reviews:          150,
		CategorizedRatio: 0.85,
		RandomSeed:       time.Now().UnixNano(),
	}
}

// SeedReport nombre de lignes insérées par table
type SeedReport struct {
	Manufacturers     int
	Categories        int
	Products          int
	ProductCategories int
	Customers         int
	Orders            int
	Reviews           int
}

var (
	manufacturerNames = []string{
		"TechCorp", "GameGear", "SoundWave", "PixelWorks", "NordicCompute",
		"VoltEdge", "ByteForge", "ClearView", "Aurora Labs", "HyperLink",
	}
	categoryNames = []string{
		"Laptops", "Smartphones", "Accessories", "Audio", "Monitors",
		"Gaming", "Storage", "Networking", "Tablets", "Wearables",
	}
	productPrefixes = []string{
		"Laptop", "Smartphone", "Mouse", "Keyboard", "Headphones",
		"Monitor", "SSD", "Router", "Tablet", "Smartwatch", "Webcam", "Speaker",
	}
	firstNames = []string{"Anna", "Erik", "Sara", "Johan", "Elin", "Oskar", "Maja", "Lars", "Ida", "Nils"}
	lastNames  = []string{"Svensson", "Johansson", "Karlsson", "Nilsson", "Eriksson", "Larsson", "Olsson"}
	streets    = []string{"Storgatan", "Kungsgatan", "Drottninggatan", "Vasagatan", "Sveavägen"}
	comments   = []string{
		"Great value for money", "Works as expected", "Fast delivery",
		"Stopped working after a month", "Excellent build quality", "Would buy again",
	}
)

// Seed peuple toutes les tables dans une seule transaction
func Seed(ctx context.Context, db *DB, opts SeedOptions) (SeedReport, error) {
	var report SeedReport
	rng := rand.New(rand.NewSource(opts.RandomSeed))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Fabricants
	manufacturerIDs, err := seedNamed(ctx, tx, manufacturerNames, opts.Manufacturers, insertManufacturerNamed)
	if err != nil {
		return report, fmt.Errorf("seed manufacturers: %w", err)
	}
	report.Manufacturers = len(manufacturerIDs)

	// 2. Catégories
	categoryIDs, err := seedNamed(ctx, tx, categoryNames, opts.Categories, insertCategoryNamed)
	if err != nil {
		return report, fmt.Errorf("seed categories: %w", err)
	}
	report.Categories = len(categoryIDs)

	// 3. Produits et association à une catégorie
	productIDs, linked, err := seedProducts(ctx, tx, rng, opts, manufacturerIDs, categoryIDs)
	if err != nil {
		return report, fmt.Errorf("seed products: %w", err)
	}
	report.Products = len(productIDs)
	report.ProductCategories = linked

	// 4. Clients
	customerIDs, err := seedCustomers(ctx, tx, rng, opts.Customers)
	if err != nil {
		return report, fmt.Errorf("seed customers: %w", err)
	}
	report.Customers = len(customerIDs)

	// 5. Commandes
	report.Orders, err = seedOrders(ctx, tx, rng, opts.Orders, customerIDs)
	if err != nil {
		return report, fmt.Errorf("seed orders: %w", err)
	}

	// 6. Avis
	report.Reviews, err = seedReviews(ctx, tx, rng, opts.Reviews, productIDs)
	if err != nil {
		return report, fmt.Errorf("seed reviews: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return report, fmt.Errorf("failed to commit seed: %w", err)
	}

	log.Info().
		Int("manufacturers", report.Manufacturers).
		Int("categories", report.Categories).
		Int("products", report.Products).
		Int("customers", report.Customers).
		Int("orders", report.Orders).
		Int("reviews", report.Reviews).
		Msg("Seed completed")

	return report, nil
}

// seedNamed génère count noms à partir de la liste (suffixe numérique au-delà) et insère chacun via insert
func seedNamed(ctx context.Context, tx *sql.Tx, names []string, count int, insert func(ctx context.Context, tx *sql.Tx, name string) (int64, error)) ([]int64, error) {
	ids := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}

		id, err := insert(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func insertManufacturerNamed(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	m := Manufacturer{Name: name}
	err := InsertManufacturer(ctx, tx, &m)
	return m.ID, err
}

func insertCategoryNamed(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	c := Category{Name: name}
	err := InsertCategory(ctx, tx, &c)
	return c.ID, err
}

// seedProducts génère les produits et rattache une partie d'entre eux à une catégorie
func seedProducts(ctx context.Context, tx *sql.Tx, rng *rand.Rand, opts SeedOptions, manufacturerIDs, categoryIDs []int64) ([]int64, int, error) {
	if opts.Products > 0 && len(manufacturerIDs) == 0 {
		return nil, 0, fmt.Errorf("products require at least one manufacturer")
	}

	ids := make([]int64, 0, opts.Products)
	linked := 0

	for i := 0; i < opts.Products; i++ {
		prefix := productPrefixes[rng.Intn(len(productPrefixes))]
		name := fmt.Sprintf("%s %d", prefix, i+1)
		description := fmt.Sprintf("Description of %s", name)

		product := Product{
			ManufacturerID: manufacturerIDs[rng.Intn(len(manufacturerIDs))],
			Name:           name,
			Description:    &description,
			Price:          float64(int((10.0+rng.Float64()*1990.0)*100)) / 100,
			StockQuantity:  rng.Intn(500),
		}
		if err := InsertProduct(ctx, tx, &product); err != nil {
			return nil, 0, err
		}
		ids = append(ids, product.ID)

		if len(categoryIDs) == 0 || rng.Float64() >= opts.CategorizedRatio {
			continue
		}
		link := ProductCategory{
			ProductID:  product.ID,
			CategoryID: categoryIDs[rng.Intn(len(categoryIDs))],
		}
		if err := InsertProductCategory(ctx, tx, link); err != nil {
			return nil, 0, err
		}
		linked++
	}

	return ids, linked, nil
}

// seedCustomers génère les clients
func seedCustomers(ctx context.Context, tx *sql.Tx, rng *rand.Rand, count int) ([]int64, error) {
	ids := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		email := fmt.Sprintf("customer%d@example.com", i+1)
		phone := fmt.Sprintf("07%08d", rng.Intn(100000000))
		address := fmt.Sprintf("%s %d", streets[rng.Intn(len(streets))], rng.Intn(120)+1)

		customer := Customer{
			Name:    first + " " + last,
			Email:   &email,
			Phone:   &phone,
			Address: &address,
		}
		if err := InsertCustomer(ctx, tx, &customer); err != nil {
			return nil, err
		}
		ids = append(ids, customer.ID)
	}

	return ids, nil
}

// seedOrders génère des commandes sur les deux dernières années
func seedOrders(ctx context.Context, tx *sql.Tx, rng *rand.Rand, count int, customerIDs []int64) (int, error) {
	if len(customerIDs) == 0 {
		return 0, nil
	}

	now := time.Now()
	for i := 0; i < count; i++ {
		order := Order{
			CustomerID: customerIDs[rng.Intn(len(customerIDs))],
			OrderDate:  now.AddDate(0, 0, -rng.Intn(730)).Format("2006-01-02"),
		}
		if err := InsertOrder(ctx, tx, &order); err != nil {
			return i, err
		}
	}

	return count, nil
}

// seedReviews génère des avis (notes de 1 à 5)
func seedReviews(ctx context.Context, tx *sql.Tx, rng *rand.Rand, count int, productIDs []int64) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	for i := 0; i < count; i++ {
		comment := comments[rng.Intn(len(comments))]
		review := Review{
			ProductID: productIDs[rng.Intn(len(productIDs))],
			Rating:    rng.Intn(5) + 1,
			Comment:   &comment,
		}
		if err := InsertReview(ctx, tx, &review); err != nil {
			return i, err
		}
	}

	return count, nil
}
