package v1

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"techgear/internal/catalog/domain"
)

// productRequest corps de POST/PUT /products
type productRequest struct {
	domain.ProductInput
	CategoryID *domain.CategoryID `json:"category_id"`
}

// ListProducts handler pour GET /products
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.FindAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handler pour GET /products/{id}
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.products.FindByID(r.Context(), domain.ProductID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// SearchProducts handler pour GET /products/search/{name}
func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	name, ok := searchFragment(w, r)
	if !ok {
		return
	}

	products, err := h.products.SearchByName(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// searchFragment retourne le segment {name} décodé.
// Quand le chemin contient un caractère réservé échappé (%2F, %2B...), chi route sur
// RawPath et le paramètre reste encodé.
func searchFragment(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}

	decoded, err := url.PathUnescape(name)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid name")
		return "", false
	}
	return decoded, true
}

// ProductsByCategory handler pour GET /products/category/{categoryId}
func (h *Handlers) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}

	products, err := h.products.FindByCategory(r.Context(), domain.CategoryID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handler pour POST /products
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.commands.Create(r.Context(), req.ProductInput)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Product created successfully",
		"product_id": id,
	})
}

// UpdateProduct handler pour PUT /products/{id}
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.commands.Update(r.Context(), domain.ProductID(id), req.ProductInput, req.CategoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Product updated successfully",
		"product_updated":   result.ProductUpdated,
		"category_updated":  result.CategoryUpdated,
		"category_inserted": result.CategoryInserted,
	})
}

// DeleteProduct handler pour DELETE /products/{id}
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.commands.Delete(r.Context(), domain.ProductID(id)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
