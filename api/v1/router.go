package v1

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions réglages du routeur
type RouterOptions struct {
	// RequestTimeout délai maximal d'une requête (0 = aucun)
	RequestTimeout time.Duration
	// Profiling expose net/http/pprof sous /debug
	Profiling bool
}

// NewRouter monte les routes de l'API.
// Les routes littérales sont déclarées avant les routes paramétrées.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(chimiddleware.Recoverer)

	if opts.Profiling {
		r.Mount("/debug", chimiddleware.Profiler())
	}

	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(opts.RequestTimeout))
		}
		routes(r, h)
	})

	return r
}

func routes(r chi.Router, h *Handlers) {
	r.Get("/health", h.Health)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/stats", h.ProductStats)
		r.Get("/search/{name}", h.SearchProducts)
		r.Get("/category/{categoryId}", h.ProductsByCategory)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/customers/{id}", func(r chi.Router) {
		r.Get("/", h.GetCustomer)
		r.Put("/", h.UpdateCustomer)
		r.Get("/orders", h.CustomerOrders)
	})

	r.Get("/reviews/stats", h.ReviewStats)
	r.Put("/categories/{oldId}", h.RenameCategory)
}
