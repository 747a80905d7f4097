package domain

// Wishlist represents a named collection of products owned by a user.
type Wishlist struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	UserID   string    `json:"userid"`
	Products []Product `json:"products"`
}

// CreateWishlistRequest is the payload for creating a wishlist. Products may
// be supplied inline and are created together with the wishlist.
type CreateWishlistRequest struct {
	Name     string                 `json:"name" validate:"required,max=63"`
	UserID   string                 `json:"userid" validate:"required,max=16"`
	Products []CreateProductRequest `json:"products" validate:"omitempty,dive"`
}

// UpdateWishlistRequest is the payload for renaming a wishlist. The owner id
// is accepted for symmetry with the create payload but never changes.
type UpdateWishlistRequest struct {
	Name   string `json:"name" validate:"required,max=63"`
	UserID string `json:"userid" validate:"omitempty,max=16"`
}
