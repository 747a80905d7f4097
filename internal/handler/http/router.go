package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/WishlistGo/internal/service"
	"github.com/utafrali/WishlistGo/pkg/health"
	"github.com/utafrali/WishlistGo/pkg/middleware"
)

// NewRouter creates a chi router with all wishlist service routes registered.
func NewRouter(
	wishlistService *service.WishlistService,
	productService *service.ProductService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("wishlist"))

	// Service index and operational endpoints
	r.Get("/", Index)
	r.Get("/health", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	wishlistHandler := NewWishlistHandler(wishlistService, logger)
	productHandler := NewProductHandler(productService, logger)

	r.Route("/wishlists", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", wishlistHandler.ListWishlists)
		r.Post("/", wishlistHandler.CreateWishlist)
		r.Get("/{id}", wishlistHandler.GetWishlist)
		r.Put("/{id}", wishlistHandler.UpdateWishlist)
		r.Delete("/{id}", wishlistHandler.DeleteWishlist)

		r.Route("/{id}/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Get("/{pid}", productHandler.GetProduct)
			r.Patch("/{pid}", productHandler.PatchProduct)
			r.Put("/{pid}", productHandler.PutProduct)
			r.Delete("/{pid}", productHandler.DeleteProduct)
		})
	})

	return r
}
