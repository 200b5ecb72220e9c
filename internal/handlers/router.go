package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/limitless-llc/checkout-relay/internal/config"
	"github.com/limitless-llc/checkout-relay/internal/middleware"
)

// NewRouter assembles the full middleware stack and routes. Kept separate
// from main so the CORS and method-gate behavior can be exercised in tests.
func NewRouter(cfg *config.Config, checkout *CheckoutHandler, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Exact-match origin allow-list. Origins outside the list get no
	// Access-Control-Allow-Origin header on any response.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"error": "Method not allowed",
		}, log)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found", log)
	})

	r.Get("/health", NewHealthHandler(log).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkout", checkout.SubmitOrder)
		// The cors middleware answers real preflights itself; this catches
		// bare OPTIONS probes that carry no Access-Control-Request-Method,
		// which would otherwise hit the 405 handler.
		r.Options("/checkout", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	return r
}
