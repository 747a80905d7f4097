package http

import (
	"net/http"

	"github.com/utafrali/WishlistGo/pkg/httputil"
)

// ServiceInfo is the JSON body returned by the service index endpoint.
type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Resources map[string]string `json:"resources"`
}

// Index handles GET / and returns service metadata.
func Index(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, ServiceInfo{
		Name:    "Wishlist REST API Service",
		Version: "1.0",
		Resources: map[string]string{
			"wishlists": "/wishlists",
			"products":  "/wishlists/{id}/products",
			"health":    "/health",
			"metrics":   "/metrics",
		},
	})
}
