package v1

import (
	"net/http"

	"techgear/internal/customers/domain"
)

// GetCustomer handler pour GET /customers/{id}
func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	customer, err := h.customers.FindWithOrders(r.Context(), domain.CustomerID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// UpdateCustomer handler pour PUT /customers/{id}
func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var in domain.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}

	changes, err := h.customers.UpdateContact(r.Context(), domain.CustomerID(id), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if changes == 0 {
		writeMessage(w, http.StatusNotFound, "Customer not found or no changes made")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Customer updated",
		"changes": changes,
	})
}

// CustomerOrders handler pour GET /customers/{id}/orders
func (h *Handlers) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	orders, err := h.customers.FindOrders(r.Context(), domain.CustomerID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
