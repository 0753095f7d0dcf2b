/**
 * @description
 * This file defines the HTTP handlers for the library-service's API endpoints.
 * Handlers are responsible for parsing requests, calling the appropriate service
 * method, and writing the response.
 *
 * @dependencies
 * - Chi router for URL parameter handling.
 * - The service's internal packages for app logic and domain types.
 */
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/transfa/library-service/internal/app"
	"github.com/transfa/library-service/internal/domain"
)

const rootMessage = "Library API is running!"

// Handler holds the dependencies for all library handlers.
type Handler struct {
	service *app.Service
	logger  *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(service *app.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Root reports that the API is up.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: rootMessage})
}

// ListBooks handles listing the whole catalog.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// GetBook handles fetching a single book.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// CreateBook handles adding a book to the catalog.
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	book, err := h.service.CreateBook(r.Context(), req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// ListUsers handles listing every user.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles registering a user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// UpdateSubscription handles changing a user's subscription tier.
func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSubscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.service.UpdateSubscription(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Borrow handles lending a book to a user.
func (h *Handler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req domain.CirculationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.service.Borrow(r.Context(), req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Return handles taking a book back from a user.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	var req domain.CirculationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.service.Return(r.Context(), req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UserHistory handles listing one user's borrow and return actions.
func (h *Handler) UserHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.UserHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
