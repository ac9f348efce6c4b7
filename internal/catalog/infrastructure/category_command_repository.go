package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"techgear/database"
	"techgear/internal/catalog/domain"
	shareddomain "techgear/internal/shared/domain"
	"techgear/internal/shared/infrastructure"
)

// CategoryCommandRepository repository pour les écritures sur les catégories
type CategoryCommandRepository struct {
	infrastructure.BaseRepository
	uow infrastructure.UnitOfWork
}

// NewCategoryCommandRepository crée un nouveau repository d'écriture pour les catégories
func NewCategoryCommandRepository(db *database.DB) *CategoryCommandRepository {
	return &CategoryCommandRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
		uow:            infrastructure.NewUnitOfWork(db),
	}
}

// Rename change l'identifiant d'une catégorie et déplace ses associations produit.
// Échoue sans rien modifier si newID est déjà utilisé (y compris newID == oldID).
func (r *CategoryCommandRepository) Rename(ctx context.Context, oldID, newID domain.CategoryID) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var changes int64

	err := r.uow.ExecuteContext(ctx, func(tx *sql.Tx) error {
		repo := r.BaseRepository.WithTx(tx)

		var exists int
		err := repo.QueryRow(ctx, "SELECT 1 FROM categories WHERE category_id = $1", int64(newID)).Scan(&exists)
		switch {
		case err == nil:
			return domain.ErrCategoryConflict
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		res, err := repo.Exec(ctx,
			"UPDATE categories SET category_id = $1 WHERE category_id = $2",
			int64(newID), int64(oldID),
		)
		if err != nil {
			return infrastructure.ClassifyError(err)
		}
		if changes, err = res.RowsAffected(); err != nil {
			return err
		}
		if changes == 0 {
			return domain.ErrCategoryNotFound
		}

		// sans effet quand la clé étrangère a déjà propagé le changement
		if _, err := repo.Exec(ctx,
			"UPDATE products_categories SET category_id = $1 WHERE category_id = $2",
			int64(newID), int64(oldID),
		); err != nil {
			return infrastructure.ClassifyError(err)
		}
		return nil
	})

	switch {
	case err == nil:
		return changes, nil
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrCategoryConflict):
		return 0, err
	case errors.Is(err, shareddomain.ErrConflict):
		// un écrivain concurrent a pris newID entre la vérification et l'update
		return 0, domain.ErrCategoryConflict
	default:
		return 0, fmt.Errorf("failed to rename category %d to %d: %w", oldID, newID, err)
	}
}
