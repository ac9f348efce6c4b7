package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"techgear/database"
	"techgear/internal/catalog/domain"
	"techgear/internal/shared/infrastructure"
)

// Projection commune : produit + fabricant + catégorie éventuelle
const productViewSelect = `
	SELECT p.product_id, p.name, p.description, p.price, p.stock_quantity,
	       m.name, c.name
	FROM products p
	JOIN manufacturers m ON m.manufacturer_id = p.manufacturer_id
	LEFT JOIN products_categories pc ON pc.product_id = p.product_id
	LEFT JOIN categories c ON c.category_id = pc.category_id
`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductQueryRepository repository pour les requêtes de lecture sur les produits
type ProductQueryRepository struct {
	infrastructure.BaseRepository
}

// NewProductQueryRepository crée un nouveau repository de lecture pour les produits
func NewProductQueryRepository(db *database.DB) *ProductQueryRepository {
	return &ProductQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FindAll récupère tous les produits
func (r *ProductQueryRepository) FindAll(ctx context.Context) ([]database.ProductView, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	rows, err := r.Query(ctx, productViewSelect+" ORDER BY p.product_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return scanProductViews(rows)
}

// FindByID trouve un produit par son ID
func (r *ProductQueryRepository) FindByID(ctx context.Context, id domain.ProductID) (*database.ProductView, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var p database.ProductView
	err := r.QueryRow(ctx, productViewSelect+" WHERE p.product_id = $1", int64(id)).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.Manufacturer, &p.Category,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// SearchByName recherche les produits dont le nom contient le fragment (insensible à la casse)
func (r *ProductQueryRepository) SearchByName(ctx context.Context, fragment string) ([]database.ProductView, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	pattern := "%" + likeEscaper.Replace(fragment) + "%"
	rows, err := r.Query(ctx,
		productViewSelect+` WHERE LOWER(p.name) LIKE LOWER($1) ESCAPE '\' ORDER BY p.product_id`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return scanProductViews(rows)
}

// FindByCategory récupère les produits d'une catégorie
func (r *ProductQueryRepository) FindByCategory(ctx context.Context, categoryID domain.CategoryID) ([]database.ProductView, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	rows, err := r.Query(ctx,
		productViewSelect+" WHERE pc.category_id = $1 ORDER BY p.product_id",
		int64(categoryID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %d: %w", categoryID, err)
	}
	return scanProductViews(rows)
}

// scanProductViews lit toutes les lignes ; retourne une slice vide (jamais nil) sans résultat
func scanProductViews(rows *sql.Rows) ([]database.ProductView, error) {
	defer rows.Close()

	products := make([]database.ProductView, 0)
	for rows.Next() {
		var p database.ProductView
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.Manufacturer, &p.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}
