package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"techgear/database"
	analyticsinfra "techgear/internal/analytics/infrastructure"
	catalogdomain "techgear/internal/catalog/domain"
	cataloginfra "techgear/internal/catalog/infrastructure"
	customersdomain "techgear/internal/customers/domain"
	customersinfra "techgear/internal/customers/infrastructure"
	shareddomain "techgear/internal/shared/domain"
)

// Taille maximale d'un corps de requête JSON
const maxBodyBytes = 1 << 20

// Handlers contient tous les handlers de l'API
type Handlers struct {
	db         *database.DB
	products   *cataloginfra.ProductQueryRepository
	commands   *cataloginfra.ProductCommandRepository
	categories *cataloginfra.CategoryCommandRepository
	customers  *customersinfra.CustomerRepository
	stats      *analyticsinfra.StatsQueryRepository
}

// NewHandlers crée les handlers et leurs repositories sur la connexion fournie
func NewHandlers(db *database.DB) *Handlers {
	return &Handlers{
		db:         db,
		products:   cataloginfra.NewProductQueryRepository(db),
		commands:   cataloginfra.NewProductCommandRepository(db),
		categories: cataloginfra.NewCategoryCommandRepository(db),
		customers:  customersinfra.NewCustomerRepository(db),
		stats:      analyticsinfra.NewStatsQueryRepository(db),
	}
}

// Health handler pour GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	driver := h.db.Dialect().DriverName()
	if err := h.db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "driver": driver})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "driver": driver})
}

// writeJSON encode la réponse avec le code HTTP donné
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeMessage réponse d'erreur {"error": msg}
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError traduit une erreur de domaine en code HTTP.
// Les erreurs de stockage sont journalisées et masquées derrière un 500 générique.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, customersdomain.ErrCustomerNotFound):
		writeMessage(w, http.StatusNotFound, "Customer not found")
	case errors.Is(err, catalogdomain.ErrCategoryNotFound):
		writeMessage(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, shareddomain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, catalogdomain.ErrCategoryConflict):
		writeMessage(w, http.StatusBadRequest, "Category id already in use")
	case errors.Is(err, shareddomain.ErrConflict):
		writeMessage(w, http.StatusBadRequest, "Duplicate value")
	case errors.Is(err, shareddomain.ErrInvalidReference):
		writeMessage(w, http.StatusBadRequest, "Referenced row does not exist")
	case errors.Is(err, shareddomain.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "Invalid input")
	default:
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID lit un identifiant numérique dans l'URL ; écrit un 400 et retourne false sinon
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return id, true
}

// decodeJSON lit le corps de la requête ; écrit un 400 et retourne false s'il est invalide
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
