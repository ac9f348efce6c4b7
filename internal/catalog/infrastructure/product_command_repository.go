package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"techgear/database"
	"techgear/internal/catalog/domain"
	"techgear/internal/shared/infrastructure"
)

// ProductCommandRepository repository pour les écritures sur les produits
type ProductCommandRepository struct {
	infrastructure.BaseRepository
	uow infrastructure.UnitOfWork
}

// NewProductCommandRepository crée un nouveau repository d'écriture pour les produits
func NewProductCommandRepository(db *database.DB) *ProductCommandRepository {
	return &ProductCommandRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
		uow:            infrastructure.NewUnitOfWork(db),
	}
}

// Create insère un produit et retourne son identifiant
func (r *ProductCommandRepository) Create(ctx context.Context, in domain.ProductInput) (domain.ProductID, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (name, description, price, stock_quantity, manufacturer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING product_id
	`

	var id int64
	err := r.QueryRow(ctx, query, productArgs(in)...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", infrastructure.ClassifyError(err))
	}
	return domain.ProductID(id), nil
}

// Update remplace les champs du produit et, si categoryID est fourni,
// met à jour ou crée son association de catégorie. Le tout dans une transaction.
func (r *ProductCommandRepository) Update(
	ctx context.Context,
	id domain.ProductID,
	in domain.ProductInput,
	categoryID *domain.CategoryID,
) (domain.UpdateResult, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var result domain.UpdateResult

	err := r.uow.ExecuteContext(ctx, func(tx *sql.Tx) error {
		repo := r.BaseRepository.WithTx(tx)

		args := append(productArgs(in), int64(id))
		res, err := repo.Exec(ctx, `
			UPDATE products
			SET name = $1, description = $2, price = $3, stock_quantity = $4, manufacturer_id = $5
			WHERE product_id = $6
		`, args...)
		if err != nil {
			return infrastructure.ClassifyError(err)
		}
		if result.ProductUpdated, err = res.RowsAffected(); err != nil {
			return err
		}
		if result.ProductUpdated == 0 {
			return domain.ErrProductNotFound
		}

		if categoryID == nil {
			return nil
		}

		res, err = repo.Exec(ctx,
			"UPDATE products_categories SET category_id = $1 WHERE product_id = $2",
			int64(*categoryID), int64(id),
		)
		if err != nil {
			return infrastructure.ClassifyError(err)
		}
		if result.CategoryUpdated, err = res.RowsAffected(); err != nil {
			return err
		}
		if result.CategoryUpdated > 0 {
			return nil
		}

		res, err = repo.Exec(ctx,
			"INSERT INTO products_categories (product_id, category_id) VALUES ($1, $2)",
			int64(id), int64(*categoryID),
		)
		if err != nil {
			return infrastructure.ClassifyError(err)
		}
		result.CategoryInserted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.UpdateResult{}, err
		}
		return domain.UpdateResult{}, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	return result, nil
}

// Delete supprime un produit ; avis et association partent en cascade
func (r *ProductCommandRepository) Delete(ctx context.Context, id domain.ProductID) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.Exec(ctx, "DELETE FROM products WHERE product_id = $1", int64(id))
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %d: %w", id, infrastructure.ClassifyError(err))
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if deleted == 0 {
		return 0, domain.ErrProductNotFound
	}
	return deleted, nil
}

// productArgs arguments (name, description, price, stock_quantity, manufacturer_id)
func productArgs(in domain.ProductInput) []any {
	var manufacturerID any
	if in.ManufacturerID != nil {
		manufacturerID = int64(*in.ManufacturerID)
	}
	return []any{
		nullable(in.Name),
		nullable(in.Description),
		nullable(in.Price),
		nullable(in.StockQuantity),
		manufacturerID,
	}
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
