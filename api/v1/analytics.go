package v1

import "net/http"

// ProductStats handler pour GET /products/stats
func (h *Handlers) ProductStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ProductStatsByCategory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ReviewStats handler pour GET /reviews/stats
func (h *Handlers) ReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ReviewStatsByProduct(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
