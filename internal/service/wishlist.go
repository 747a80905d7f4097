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

// WishlistService implements the business logic for wishlist operations.
type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	repo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *WishlistService {
	return &WishlistService{
		repo:        repo,
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateWishlist creates a wishlist, together with any products supplied
// inline in the payload. The wishlist and its products are persisted in one
// transaction, so a failing product leaves nothing behind.
func (s *WishlistService) CreateWishlist(ctx context.Context, req *domain.CreateWishlistRequest) (*domain.Wishlist, error) {
	w := &domain.Wishlist{
		Name:     req.Name,
		UserID:   req.UserID,
		Products: make([]domain.Product, 0, len(req.Products)),
	}

	for i := range req.Products {
		w.Products = append(w.Products, *productFromCreateRequest(&req.Products[i], 0))
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistCreated(ctx, w); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.created event",
			slog.Int64("wishlist_id", w.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "wishlist created",
		slog.Int64("wishlist_id", w.ID),
		slog.String("userid", w.UserID),
	)

	return w, nil
}

// GetWishlist retrieves a wishlist with its products.
func (s *WishlistService) GetWishlist(ctx context.Context, id int64) (*domain.Wishlist, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get wishlist by id: %w", err)
	}

	products, err := s.productRepo.ListByWishlist(ctx, id, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("list wishlist products: %w", err)
	}
	w.Products = products

	return w, nil
}

// ListWishlists returns a page of wishlists with their products populated.
// Page and limit are clamped to a minimum of 1.
func (s *WishlistService) ListWishlists(ctx context.Context, filter repository.WishlistFilter) ([]domain.Wishlist, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 1
	}

	wishlists, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlists: %w", err)
	}

	if len(wishlists) > 0 {
		ids := make([]int64, len(wishlists))
		for i, w := range wishlists {
			ids[i] = w.ID
		}

		byWishlist, err := s.productRepo.ListByWishlistIDs(ctx, ids)
		if err != nil {
			return nil, 0, fmt.Errorf("list wishlist products: %w", err)
		}

		for i := range wishlists {
			if products, ok := byWishlist[wishlists[i].ID]; ok {
				wishlists[i].Products = products
			}
		}
	}

	return wishlists, total, nil
}

// UpdateWishlist renames a wishlist. The owner id is immutable. The payload
// is validated after the existence check, so a missing wishlist is reported
// as not found even when the payload is also invalid.
func (s *WishlistService) UpdateWishlist(ctx context.Context, id int64, req *domain.UpdateWishlistRequest) (*domain.Wishlist, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get wishlist by id: %w", err)
	}

	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	w.Name = req.Name

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("update wishlist: %w", err)
	}

	products, err := s.productRepo.ListByWishlist(ctx, id, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("list wishlist products: %w", err)
	}
	w.Products = products

	if err := s.producer.PublishWishlistUpdated(ctx, w); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.Int64("wishlist_id", w.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist updated", slog.Int64("wishlist_id", w.ID))

	return w, nil
}

// DeleteWishlist removes a wishlist and its products. Deleting a wishlist
// that does not exist is a success.
func (s *WishlistService) DeleteWishlist(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.deleted event",
			slog.Int64("wishlist_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist deleted", slog.Int64("wishlist_id", id))

	return nil
}
