package router

import (
	"net/http"

	"petclinic-console/internal/handler"
	"petclinic-console/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Prefixes the gateway routes are mounted under.
var Prefixes = []string{"/api/gateway", "/api/v2/gateway"}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	inventoryHandler *handler.InventoryHandler,
	visitHandler *handler.VisitHandler,
	clinicHandler *handler.ClinicHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	gateway := func(r chi.Router) {
		r.Route("/inventories", func(r chi.Router) {
			r.Get("/", inventoryHandler.List)
			r.Post("/", inventoryHandler.Create)
			r.Get("/types", inventoryHandler.Types)
			r.Delete("/{inventoryId}", inventoryHandler.Delete)
			r.Get("/{inventoryId}/products", inventoryHandler.Products)
			r.Delete("/{inventoryId}/products/{productId}", inventoryHandler.DeleteProduct)
		})

		r.Route("/visits", func(r chi.Router) {
			r.Get("/", visitHandler.List)
			r.Get("/vets/{vetId}", visitHandler.ByVet)
			r.Get("/owners/{ownerId}", visitHandler.ByOwner)
			r.Put("/{visitId}/status/{status}", visitHandler.UpdateStatus)
			r.Delete("/{visitId}", visitHandler.Delete)
		})

		r.Get("/vets", clinicHandler.Vets)

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", clinicHandler.Bills)
			r.Get("/paid", clinicHandler.PaidBills)
			r.Get("/unpaid", clinicHandler.UnpaidBills)
			r.Get("/overdue", clinicHandler.OverdueBills)
		})
	}

	for _, prefix := range Prefixes {
		r.Route(prefix, gateway)
	}

	return r
}
