package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/repository"
	"github.com/utafrali/WishlistGo/internal/service"
	"github.com/utafrali/WishlistGo/pkg/httputil"
)

// ProductHandler handles HTTP requests for wishlist product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateProduct handles POST /wishlists/{id}/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	wishlistID, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error(),
		})
		return
	}

	// Payload validation happens in the service after the wishlist lookup.
	product, err := h.service.CreateProduct(r.Context(), wishlistID, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/wishlists/%d/products/%d", wishlistID, product.ID))
	httputil.WriteJSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /wishlists/{id}/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	wishlistID, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var filter repository.ProductFilter

	if v := r.URL.Query().Get("product_name"); v != "" {
		filter.Name = &v
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Code: "INVALID_PARAMETER", Message: "'min_price' must be a valid decimal number",
			})
			return
		}
		filter.MinPrice = &price
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Code: "INVALID_PARAMETER", Message: "'max_price' must be a valid decimal number",
			})
			return
		}
		filter.MaxPrice = &price
	}

	products, err := h.service.ListProducts(r.Context(), wishlistID, filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /wishlists/{id}/products/{pid}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	wishlistID, productID, ok := parseProductPath(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), wishlistID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// PatchProduct handles PATCH /wishlists/{id}/products/{pid}
func (h *ProductHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	wishlistID, productID, ok := parseProductPath(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.PatchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error(),
		})
		return
	}

	product, deleted, err := h.service.PatchProduct(r.Context(), wishlistID, productID, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if deleted {
		httputil.NoContent(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// PutProduct handles PUT /wishlists/{id}/products/{pid}
func (h *ProductHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	wishlistID, productID, ok := parseProductPath(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.PutProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error(),
		})
		return
	}

	product, err := h.service.PutProduct(r.Context(), wishlistID, productID, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /wishlists/{id}/products/{pid}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	wishlistID, productID, ok := parseProductPath(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), wishlistID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.NoContent(w)
}

func parseProductPath(w http.ResponseWriter, r *http.Request) (wishlistID, productID int64, ok bool) {
	wishlistID, ok = httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return 0, 0, false
	}
	productID, ok = httputil.ParseID(w, chi.URLParam(r, "pid"))
	if !ok {
		return 0, 0, false
	}
	return wishlistID, productID, true
}
