package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/utafrali/WishlistGo/internal/domain"
)

// WishlistFilter defines filter criteria for listing wishlists.
type WishlistFilter struct {
	// Name matches wishlists by exact name when set.
	Name  *string
	Page  int
	Limit int
}

// ProductFilter defines filter criteria for listing products of a wishlist.
type ProductFilter struct {
	// Name matches product names case-insensitively as a substring when set.
	Name *string
	// MinPrice and MaxPrice bound the price range inclusively when set.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// WishlistRepository defines the interface for wishlist persistence operations.
type WishlistRepository interface {
	// Create inserts a new wishlist and any products attached to it in one
	// transaction, assigning generated ids to all of them.
	Create(ctx context.Context, w *domain.Wishlist) error

	// GetByID retrieves a wishlist by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Wishlist, error)

	// List returns wishlists matching the given filter along with the total count.
	List(ctx context.Context, filter WishlistFilter) ([]domain.Wishlist, int, error)

	// Update modifies an existing wishlist.
	Update(ctx context.Context, w *domain.Wishlist) error

	// Delete removes a wishlist and all of its products.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into a wishlist and assigns its generated id.
	Create(ctx context.Context, p *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// ListByWishlist returns the products of one wishlist matching the filter.
	ListByWishlist(ctx context.Context, wishlistID int64, filter ProductFilter) ([]domain.Product, error)

	// ListByWishlistIDs returns the products of several wishlists in one query,
	// keyed by wishlist id.
	ListByWishlistIDs(ctx context.Context, wishlistIDs []int64) (map[int64][]domain.Product, error)

	// Update modifies an existing product.
	Update(ctx context.Context, p *domain.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id int64) error
}
