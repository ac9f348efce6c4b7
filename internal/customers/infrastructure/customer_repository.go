package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"techgear/database"
	"techgear/internal/customers/domain"
	"techgear/internal/shared/infrastructure"
)

// CustomerRepository repository des clients et de leurs commandes
type CustomerRepository struct {
	infrastructure.BaseRepository
}

// NewCustomerRepository crée un nouveau repository clients
func NewCustomerRepository(db *database.DB) *CustomerRepository {
	return &CustomerRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// customerOrderRow ligne brute de la jointure gauche clients x commandes
type customerOrderRow struct {
	customerID int64
	name       string
	email      *string
	phone      *string
	address    *string
	orderID    sql.NullInt64
	orderDate  sql.NullString
}

// FindWithOrders retourne le client et ses commandes (triées par date puis id)
func (r *CustomerRepository) FindWithOrders(ctx context.Context, id domain.CustomerID) (*database.CustomerWithOrders, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.customer_id, c.name, c.email, c.phone, c.address,
		       o.order_id, ` + r.Dialect().DateText("o.order_date") + `
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.customer_id
		WHERE c.customer_id = $1
		ORDER BY o.order_date, o.order_id
	`

	rows, err := r.Query(ctx, query, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	defer rows.Close()

	var joined []customerOrderRow
	for rows.Next() {
		var row customerOrderRow
		if err := rows.Scan(
			&row.customerID, &row.name, &row.email, &row.phone, &row.address,
			&row.orderID, &row.orderDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer %d: %w", id, err)
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customer %d: %w", id, err)
	}

	customers := aggregateCustomers(joined)
	if len(customers) == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return &customers[0], nil
}

// aggregateCustomers regroupe les lignes jointes par client (ordre de première apparition)
// et ignore les emplacements de commande NULL produits par la jointure gauche
func aggregateCustomers(rows []customerOrderRow) []database.CustomerWithOrders {
	customers := make([]database.CustomerWithOrders, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		i, ok := index[row.customerID]
		if !ok {
			i = len(customers)
			index[row.customerID] = i
			customers = append(customers, database.CustomerWithOrders{
				ID:      row.customerID,
				Name:    row.name,
				Email:   row.email,
				Phone:   row.phone,
				Address: row.address,
				Orders:  make([]database.OrderSummary, 0),
			})
		}

		if !row.orderID.Valid {
			continue
		}
		customers[i].Orders = append(customers[i].Orders, database.OrderSummary{
			ID:        row.orderID.Int64,
			OrderDate: row.orderDate.String,
		})
	}

	return customers
}

// UpdateContact écrase email, téléphone et adresse ; retourne le nombre de lignes modifiées
func (r *CustomerRepository) UpdateContact(ctx context.Context, id domain.CustomerID, in domain.ContactInput) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.Exec(ctx,
		"UPDATE customers SET email = $1, phone = $2, address = $3 WHERE customer_id = $4",
		nullable(in.Email), nullable(in.Phone), nullable(in.Address), int64(id),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update customer %d: %w", id, infrastructure.ClassifyError(err))
	}

	changes, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	return changes, nil
}

// FindOrders liste les commandes d'un client
func (r *CustomerRepository) FindOrders(ctx context.Context, id domain.CustomerID) ([]database.OrderSummary, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT order_id, ` + r.Dialect().DateText("order_date") + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date, order_id
	`

	rows, err := r.Query(ctx, query, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of customer %d: %w", id, err)
	}
	defer rows.Close()

	orders := make([]database.OrderSummary, 0)
	for rows.Next() {
		var o database.OrderSummary
		if err := rows.Scan(&o.ID, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
