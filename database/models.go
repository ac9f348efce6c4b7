package database

// ============================================================================
// MODÈLES DE DONNÉES - Tables du webshop
// ============================================================================

// Manufacturer - Fabricant
type Manufacturer struct {
	ID   int64  `json:"manufacturer_id"`
	Name string `json:"name"`
}

// Category - Catégorie de produit
type Category struct {
	ID   int64  `json:"category_id"`
	Name string `json:"name"`
}

// Product - Produit (ligne de la table products)
type Product struct {
	ID             int64   `json:"product_id"`
	ManufacturerID int64   `json:"manufacturer_id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Price          float64 `json:"price"`
	StockQuantity  int     `json:"stock_quantity"`
}

// ProductCategory - Association produit-catégorie (au plus une par produit)
type ProductCategory struct {
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}

// Customer - Client
type Customer struct {
	ID      int64   `json:"customer_id"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// Order - Commande
type Order struct {
	ID         int64  `json:"order_id"`
	CustomerID int64  `json:"customer_id"`
	OrderDate  string `json:"order_date"`
}

// Review - Avis sur un produit
type Review struct {
	ID        int64   `json:"review_id"`
	ProductID int64   `json:"product_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}

// ============================================================================
// VUES / QUERIES AVEC JOINTURES (réponses API)
// ============================================================================

// ProductView - Produit joint avec le nom du fabricant et de la catégorie
type ProductView struct {
	ID            int64   `json:"product_id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Manufacturer  string  `json:"manufacturer"`
	Category      *string `json:"category"`
}

// OrderSummary - Commande telle qu'exposée sous un client
type OrderSummary struct {
	ID        int64  `json:"order_id"`
	OrderDate string `json:"order_date"`
}

// CustomerWithOrders - Client avec la liste de ses commandes
type CustomerWithOrders struct {
	ID      int64          `json:"customer_id"`
	Name    string         `json:"name"`
	Email   *string        `json:"email"`
	Phone   *string        `json:"phone"`
	Address *string        `json:"address"`
	Orders  []OrderSummary `json:"orders"`
}

// ============================================================================
// MODÈLES POUR LES STATISTIQUES (API Response)
// ============================================================================

// CategoryProductStats - Statistiques produits par catégorie
type CategoryProductStats struct {
	Category      string  `json:"category"`
	TotalProducts int     `json:"total_products"`
	AvgPrice      float64 `json:"avg_price"`
	TotalStock    int64   `json:"total_stock"`
}

// ProductReviewStats - Statistiques d'avis par produit
type ProductReviewStats struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	AvgRating   float64 `json:"avg_rating"`
	Comments    *string `json:"comments"`
}
