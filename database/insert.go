package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Queryer interface commune à *sql.DB et *sql.Tx pour les insertions
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertRow insère une ligne. Avec un identifiant à zéro la base le génère et
// il est relu via RETURNING, sinon l'identifiant fourni est inséré tel quel.
func insertRow(ctx context.Context, q Queryer, table, idColumn string, id *int64, columns []string, values ...any) error {
	if *id != 0 {
		columns = append([]string{idColumn}, columns...)
		values = append([]any{*id}, values...)
	}

	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if *id != 0 {
		_, err := q.ExecContext(ctx, query, values...)
		return err
	}
	return q.QueryRowContext(ctx, query+" RETURNING "+idColumn, values...).Scan(id)
}

// InsertManufacturer insère un fabricant et renseigne m.ID
func InsertManufacturer(ctx context.Context, q Queryer, m *Manufacturer) error {
	return insertRow(ctx, q, "manufacturers", "manufacturer_id", &m.ID, []string{"name"}, m.Name)
}

// InsertCategory insère une catégorie et renseigne c.ID
func InsertCategory(ctx context.Context, q Queryer, c *Category) error {
	return insertRow(ctx, q, "categories", "category_id", &c.ID, []string{"name"}, c.Name)
}

// InsertProduct insère un produit et renseigne p.ID
func InsertProduct(ctx context.Context, q Queryer, p *Product) error {
	return insertRow(ctx, q, "products", "product_id", &p.ID,
		[]string{"manufacturer_id", "name", "description", "price", "stock_quantity"},
		p.ManufacturerID, p.Name, nullString(p.Description), p.Price, p.StockQuantity,
	)
}

// InsertProductCategory rattache un produit à sa catégorie
func InsertProductCategory(ctx context.Context, q Queryer, pc ProductCategory) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO products_categories (product_id, category_id) VALUES ($1, $2)",
		pc.ProductID, pc.CategoryID,
	)
	return err
}

// InsertCustomer insère un client et renseigne c.ID
func InsertCustomer(ctx context.Context, q Queryer, c *Customer) error {
	return insertRow(ctx, q, "customers", "customer_id", &c.ID,
		[]string{"name", "email", "phone", "address"},
		c.Name, nullString(c.Email), nullString(c.Phone), nullString(c.Address),
	)
}

// InsertOrder insère une commande (date au format YYYY-MM-DD) et renseigne o.ID
func InsertOrder(ctx context.Context, q Queryer, o *Order) error {
	return insertRow(ctx, q, "orders", "order_id", &o.ID,
		[]string{"customer_id", "order_date"},
		o.CustomerID, o.OrderDate,
	)
}

// InsertReview insère un avis et renseigne r.ID
func InsertReview(ctx context.Context, q Queryer, r *Review) error {
	return insertRow(ctx, q, "reviews", "review_id", &r.ID,
		[]string{"product_id", "rating", "comment"},
		r.ProductID, r.Rating, nullString(r.Comment),
	)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
