/**
 * @description
 * This file sets up the HTTP router for the library-service using the go-chi/chi
 * router. It applies middleware for request ids, logging, panic recovery, timeouts
 * and CORS, and maps the routes to their handler functions.
 */
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	librarymw "github.com/transfa/library-service/pkg/middleware"
)

// NewRouter creates a new Chi router and registers the library routes.
func NewRouter(h *Handler, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(librarymw.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300, // Maximum value not ignored by any major browsers
	}))

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Library service is healthy"))
	})

	r.Get("/", h.Root)

	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.ListBooks)
		r.Post("/", h.CreateBook)
		r.Get("/{id}", h.GetBook)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Put("/{id}/subscription", h.UpdateSubscription)
		r.Get("/{id}/history", h.UserHistory)
	})

	r.Post("/borrow", h.Borrow)
	r.Post("/return", h.Return)

	return r
}
