// Package rest provides HTTP handlers for the development catalog.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	perrors "github.com/abgdnv/gocommerce-admin/internal/devcatalog/errors"
	"github.com/abgdnv/gocommerce-admin/internal/devcatalog/store"
	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/abgdnv/gocommerce-admin/pkg/auth"
	"github.com/abgdnv/gocommerce-admin/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Authority issues tokens on login and verifies them on protected routes.
type Authority interface {
	auth.Verifier
	Login(username, password string) (string, time.Time, error)
}

// Handler serves the catalog REST API over a ProductStore.
type Handler struct {
	store     store.ProductStore
	authority Authority
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a new Handler over the given store and authority.
func NewHandler(s store.ProductStore, authority Authority, logger *slog.Logger) *Handler {
	return &Handler{
		store:     s,
		authority: authority,
		validate:  validator.New(),
		logger:    logger.With("component", "rest"),
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type stockRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// RegisterRoutes registers the HTTP routes for the catalog.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.FindAll)
			r.Get("/{id}", h.FindByID)

			r.Group(func(r chi.Router) {
				r.Use(web.BearerAuth(h.authority, h.logger))
				r.Put("/{id}", h.Update)
				r.Put("/{id}/stock", h.UpdateStock)
				r.Delete("/{id}", h.DeleteByID)
			})
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// Login exchanges admin credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		web.RespondValidationError(w, r, h.logger, err)
		return
	}
	token, expires, err := h.authority.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.WarnContext(r.Context(), "Login rejected", "username", req.Username)
			web.RespondError(w, h.logger, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error issuing token", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	h.logger.InfoContext(r.Context(), "Login succeeded", "username", req.Username)
	web.RespondJSON(w, h.logger, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expires})
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.FindAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"products": list})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	found, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, id, "retrieve", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"product": found})
}

// Update applies a partial update to a product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var patch product.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.IsEmpty() {
		web.RespondError(w, h.logger, http.StatusBadRequest, "No fields to update")
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		web.RespondValidationError(w, r, h.logger, err)
		return
	}

	updated, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		h.respondStoreError(w, r, id, "update", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "by", web.Subject(r.Context()))
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"product": updated})
}

// UpdateStock sets the availability of a product.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		web.RespondValidationError(w, r, h.logger, err)
		return
	}

	updated, err := h.store.UpdateStock(r.Context(), id, *req.IsAvailable)
	if err != nil {
		h.respondStoreError(w, r, id, "update stock for", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Stock updated successfully for product", "ID", updated.ID, "isAvailable", updated.IsAvailable)
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"product": updated})
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		h.respondStoreError(w, r, id, "delete", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id, "by", web.Subject(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, id uuid.UUID, action string, err error) {
	if errors.Is(err, perrors.ErrProductNotFound) {
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
		return
	}
	h.logger.ErrorContext(r.Context(), "Store operation failed", "ID", id, "action", action, "error", err)
	web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product with ID %s", action, id))
}
