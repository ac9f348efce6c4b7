package domain

import (
	"fmt"

	"techgear/internal/shared/domain"
)

// CategoryID représente l'identifiant unique d'une catégorie
type CategoryID int64

var (
	// ErrCategoryNotFound la catégorie à renommer n'existe pas
	ErrCategoryNotFound = fmt.Errorf("category %w", domain.ErrNotFound)
	// ErrCategoryConflict le nouvel identifiant est déjà pris
	ErrCategoryConflict = fmt.Errorf("category id %w", domain.ErrConflict)
)
