package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/event"
	"github.com/utafrali/WishlistGo/internal/repository"
	apperrors "github.com/utafrali/WishlistGo/pkg/errors"
	"github.com/utafrali/WishlistGo/pkg/validator"
)

// ProductService implements the business logic for wishlist product operations.
type ProductService struct {
	repo         repository.ProductRepository
	wishlistRepo repository.WishlistRepository
	producer     *event.Producer
	logger       *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	repo repository.ProductRepository,
	wishlistRepo repository.WishlistRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		repo:         repo,
		wishlistRepo: wishlistRepo,
		producer:     producer,
		logger:       logger,
	}
}

func productFromCreateRequest(req *domain.CreateProductRequest, wishlistID int64) *domain.Product {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	return &domain.Product{
		WishlistID:  wishlistID,
		Name:        req.Name,
		Price:       *req.Price,
		Quantity:    quantity,
		Description: req.Description,
		Note:        req.Note,
		IsGift:      req.IsGift,
		Purchased:   req.Purchased,
	}
}

// CreateProduct adds a product to an existing wishlist. The payload is
// validated after the wishlist lookup, so a missing wishlist is reported as
// not found even when the payload is also invalid.
func (s *ProductService) CreateProduct(ctx context.Context, wishlistID int64, req *domain.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.wishlistRepo.GetByID(ctx, wishlistID); err != nil {
		return nil, fmt.Errorf("get wishlist by id: %w", err)
	}

	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	p := productFromCreateRequest(req, wishlistID)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.Int64("product_id", p.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", p.ID),
		slog.Int64("wishlist_id", wishlistID),
	)

	return p, nil
}

// ListProducts returns the products of a wishlist matching the filter.
func (s *ProductService) ListProducts(ctx context.Context, wishlistID int64, filter repository.ProductFilter) ([]domain.Product, error) {
	if _, err := s.wishlistRepo.GetByID(ctx, wishlistID); err != nil {
		return nil, fmt.Errorf("get wishlist by id: %w", err)
	}

	products, err := s.repo.ListByWishlist(ctx, wishlistID, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a product, verifying that the wishlist exists and the
// product belongs to it.
func (s *ProductService) GetProduct(ctx context.Context, wishlistID, productID int64) (*domain.Product, error) {
	return s.getOwned(ctx, wishlistID, productID)
}

// getOwned loads a product after checking, in order, that the wishlist
// exists, the product exists, and the product belongs to that wishlist.
func (s *ProductService) getOwned(ctx context.Context, wishlistID, productID int64) (*domain.Product, error) {
	if _, err := s.wishlistRepo.GetByID(ctx, wishlistID); err != nil {
		return nil, fmt.Errorf("get wishlist by id: %w", err)
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if p.WishlistID != wishlistID {
		return nil, apperrors.Forbidden(fmt.Sprintf(
			"Product with id '%d' does not belong to Wishlist with id '%d'.", productID, wishlistID))
	}

	return p, nil
}

// PatchProduct applies a partial update to a product. Only note, is_gift,
// quantity and purchased can change; at least one must be supplied. Setting
// quantity to 0 deletes the product, reported by the deleted return value.
// The payload check runs after the ownership ladder, so missing resources
// win over an empty payload.
func (s *ProductService) PatchProduct(ctx context.Context, wishlistID, productID int64, req *domain.PatchProductRequest) (p *domain.Product, deleted bool, err error) {
	p, err = s.getOwned(ctx, wishlistID, productID)
	if err != nil {
		return nil, false, err
	}

	if req.Empty() {
		return nil, false, apperrors.InvalidInput(
			"at least one of 'note', 'is_gift', 'quantity', 'purchased' must be provided")
	}

	if req.Quantity != nil {
		// A quantity of zero means the product is no longer wanted.
		if *req.Quantity == 0 {
			if err := s.deleteByID(ctx, p); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		}
		if *req.Quantity < 0 {
			return nil, false, apperrors.InvalidInput("'quantity' must be a non-negative integer")
		}
		p.Quantity = *req.Quantity
	}

	if req.Note != nil {
		p.Note = req.Note
	}
	if req.IsGift != nil {
		p.IsGift = *req.IsGift
	}
	if req.Purchased != nil {
		p.Purchased = *req.Purchased
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, false, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.Int64("product_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.Int64("product_id", p.ID),
		slog.Int64("wishlist_id", wishlistID),
	)

	return p, false, nil
}

// PutProduct replaces a product's fields. The optional note, is_gift and
// purchased fields carry over from the stored product when absent. The
// payload is validated after the ownership ladder.
func (s *ProductService) PutProduct(ctx context.Context, wishlistID, productID int64, req *domain.PutProductRequest) (*domain.Product, error) {
	p, err := s.getOwned(ctx, wishlistID, productID)
	if err != nil {
		return nil, err
	}

	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Price = *req.Price
	p.Quantity = *req.Quantity
	p.Description = *req.Description

	if req.Note != nil {
		p.Note = req.Note
	}
	if req.IsGift != nil {
		p.IsGift = *req.IsGift
	}
	if req.Purchased != nil {
		p.Purchased = *req.Purchased
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.Int64("product_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product replaced",
		slog.Int64("product_id", p.ID),
		slog.Int64("wishlist_id", wishlistID),
	)

	return p, nil
}

// DeleteProduct removes a product. Missing wishlist, missing product and
// ownership mismatch are all treated as already deleted; a mismatched
// product is left untouched under its own wishlist.
func (s *ProductService) DeleteProduct(ctx context.Context, wishlistID, productID int64) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get product by id: %w", err)
	}

	if p.WishlistID != wishlistID {
		return nil
	}

	return s.deleteByID(ctx, p)
}

func (s *ProductService) deleteByID(ctx context.Context, p *domain.Product) error {
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, p.ID, p.WishlistID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.Int64("product_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", p.ID),
		slog.Int64("wishlist_id", p.WishlistID),
	)

	return nil
}
