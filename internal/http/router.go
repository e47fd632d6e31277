package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	inventoryHandler "github.com/dmarulanda/marqueteria/internal/http/inventory"
	invoiceHandler "github.com/dmarulanda/marqueteria/internal/http/invoice"
	providerHandler "github.com/dmarulanda/marqueteria/internal/http/provider"
	quotesHandler "github.com/dmarulanda/marqueteria/internal/http/quotes"
)

func New(
	inventoryV1 *inventoryHandler.Handler,
	quotesV1 *quotesHandler.Handler,
	invoicesV1 *invoiceHandler.Handler,
	providersV1 *providerHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The static frontend is served from a different origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", inventoryV1.Routes)

		r.Route("/quotes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			quotesV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			providersV1.Routes(r)
		})
	})

	return router
}
