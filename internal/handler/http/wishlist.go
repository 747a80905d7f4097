package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/repository"
	"github.com/utafrali/WishlistGo/internal/service"
	"github.com/utafrali/WishlistGo/pkg/httputil"
	"github.com/utafrali/WishlistGo/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateWishlist handles POST /wishlists
func (h *WishlistHandler) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req domain.CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	wishlist, err := h.service.CreateWishlist(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/wishlists/%d", wishlist.ID))
	httputil.WriteJSON(w, http.StatusCreated, wishlist)
}

// ListWishlists handles GET /wishlists
func (h *WishlistHandler) ListWishlists(w http.ResponseWriter, r *http.Request) {
	filter := repository.WishlistFilter{Page: 1, Limit: 10}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Code: "INVALID_PARAMETER", Message: "'page' must be a valid integer",
			})
			return
		}
		filter.Page = page
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Code: "INVALID_PARAMETER", Message: "'limit' must be a valid integer",
			})
			return
		}
		filter.Limit = limit
	}
	if v := r.URL.Query().Get("name"); v != "" {
		filter.Name = &v
	}

	wishlists, _, err := h.service.ListWishlists(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, wishlists)
}

// GetWishlist handles GET /wishlists/{id}
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	wishlist, err := h.service.GetWishlist(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, wishlist)
}

// UpdateWishlist handles PUT /wishlists/{id}
func (h *WishlistHandler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.UpdateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error(),
		})
		return
	}

	// Payload validation happens in the service after the existence check.
	wishlist, err := h.service.UpdateWishlist(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, wishlist)
}

// DeleteWishlist handles DELETE /wishlists/{id}
func (h *WishlistHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteWishlist(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.NoContent(w)
}
