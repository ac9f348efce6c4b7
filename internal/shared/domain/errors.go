package domain

import "errors"

// Erreurs de domaine communes, reconnues par errors.Is dans la couche HTTP
var (
	// ErrNotFound la ligne ciblée n'existe pas
	ErrNotFound = errors.New("not found")
	// ErrConflict l'identifiant ou la valeur unique est déjà utilisé
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference une clé étrangère pointe vers une ligne absente
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidInput une contrainte NOT NULL / CHECK / type a été violée
	ErrInvalidInput = errors.New("invalid input")
)
