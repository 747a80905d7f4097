package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are serialized as JSON numbers, matching the wire format the
	// API has always produced.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents an item on a wishlist.
type Product struct {
	ID          int64           `json:"id"`
	WishlistID  int64           `json:"wishlist_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	Note        *string         `json:"note"`
	IsGift      bool            `json:"is_gift"`
	Purchased   bool            `json:"purchased"`
}

// CreateProductRequest is the payload for adding a product to a wishlist.
// Quantity defaults to 1 when absent; note, is_gift and purchased default to
// null/false.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=64"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	Description string           `json:"description" validate:"max=255"`
	Note        *string          `json:"note" validate:"omitempty,max=255"`
	IsGift      bool             `json:"is_gift"`
	Purchased   bool             `json:"purchased"`
}

// PatchProductRequest is the payload for a partial product update. Only the
// four whitelisted fields can be changed; at least one must be present.
type PatchProductRequest struct {
	Note      *string `json:"note"`
	IsGift    *bool   `json:"is_gift"`
	Quantity  *int    `json:"quantity"`
	Purchased *bool   `json:"purchased"`
}

// Empty reports whether no recognized field was supplied.
func (r *PatchProductRequest) Empty() bool {
	return r.Note == nil && r.IsGift == nil && r.Quantity == nil && r.Purchased == nil
}

// PutProductRequest is the payload for a full product update. The optional
// fields carry over from the stored product when absent.
type PutProductRequest struct {
	Name        string           `json:"name" validate:"required,max=64"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"required,gte=0"`
	Description *string          `json:"description" validate:"required,max=255"`
	Note        *string          `json:"note" validate:"omitempty,max=255"`
	IsGift      *bool            `json:"is_gift"`
	Purchased   *bool            `json:"purchased"`
}
