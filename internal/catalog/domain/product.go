package domain

import (
	"fmt"

	"techgear/internal/shared/domain"
)

// ProductID représente l'identifiant unique d'un produit
type ProductID int64

// ManufacturerID représente l'identifiant d'un fabricant
type ManufacturerID int64

// ErrProductNotFound aucun produit ne correspond à l'identifiant
var ErrProductNotFound = fmt.Errorf("product %w", domain.ErrNotFound)

// ProductInput champs modifiables d'un produit.
// Un champ nil est écrit NULL : les contraintes du store décident de sa validité.
type ProductInput struct {
	Name           *string         `json:"name"`
	Description    *string         `json:"description"`
	Price          *float64        `json:"price"`
	StockQuantity  *int            `json:"stock_quantity"`
	ManufacturerID *ManufacturerID `json:"manufacturer_id"`
}

// UpdateResult nombre de lignes touchées par une mise à jour de produit
type UpdateResult struct {
	ProductUpdated   int64 `json:"product_updated"`
	CategoryUpdated  int64 `json:"category_updated"`
	CategoryInserted int64 `json:"category_inserted"`
}
