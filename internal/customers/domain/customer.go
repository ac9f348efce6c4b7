package domain

import (
	"fmt"

	"techgear/internal/shared/domain"
)

// CustomerID représente l'identifiant unique d'un client
type CustomerID int64

// ErrCustomerNotFound aucun client ne correspond à l'identifiant
var ErrCustomerNotFound = fmt.Errorf("customer %w", domain.ErrNotFound)

// ContactInput coordonnées d'un client, écrasées telles quelles (nil => NULL)
type ContactInput struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
