package infrastructure

import (
	"context"
	"fmt"

	"techgear/database"
	"techgear/internal/analytics/domain"
	"techgear/internal/shared/infrastructure"
)

// StatsQueryRepository repository pour les requêtes analytiques
type StatsQueryRepository struct {
	infrastructure.BaseRepository
}

// NewStatsQueryRepository crée un nouveau repository de stats
func NewStatsQueryRepository(db *database.DB) *StatsQueryRepository {
	return &StatsQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// ProductStatsByCategory agrège les produits par catégorie.
// Les produits sans catégorie sont regroupés sous "Uncategorized" ;
// une catégorie sans produit n'apparaît pas.
func (r *StatsQueryRepository) ProductStatsByCategory(ctx context.Context) ([]database.CategoryProductStats, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	bucket := fmt.Sprintf("COALESCE(c.name, '%s')", domain.Uncategorized)
	query := `
		SELECT ` + bucket + ` AS category,
		       COUNT(p.product_id) AS total_products,
		       AVG(p.price) AS avg_price,
		       COALESCE(SUM(p.stock_quantity), 0) AS total_stock
		FROM products p
		LEFT JOIN products_categories pc ON pc.product_id = p.product_id
		LEFT JOIN categories c ON c.category_id = pc.category_id
		GROUP BY ` + bucket + `
		ORDER BY category
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category stats: %w", err)
	}
	defer rows.Close()

	stats := make([]database.CategoryProductStats, 0)
	for rows.Next() {
		var s database.CategoryProductStats
		if err := rows.Scan(&s.Category, &s.TotalProducts, &s.AvgPrice, &s.TotalStock); err != nil {
			return nil, fmt.Errorf("failed to scan category stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category stats: %w", err)
	}

	return stats, nil
}

// ReviewStatsByProduct note moyenne et commentaires concaténés par produit.
// Seuls les produits ayant au moins un avis sont retournés.
func (r *StatsQueryRepository) ReviewStatsByProduct(ctx context.Context) ([]database.ProductReviewStats, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.product_id, p.name,
		       AVG(r.rating) AS avg_rating,
		       ` + r.Dialect().StringAgg("r.comment", domain.CommentSeparator, "r.review_id") + ` AS comments
		FROM reviews r
		JOIN products p ON p.product_id = r.product_id
		GROUP BY p.product_id, p.name
		ORDER BY p.product_id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute review stats: %w", err)
	}
	defer rows.Close()

	stats := make([]database.ProductReviewStats, 0)
	for rows.Next() {
		var s database.ProductReviewStats
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.AvgRating, &s.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan review stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review stats: %w", err)
	}

	return stats, nil
}
