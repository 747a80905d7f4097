package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/event"
	"github.com/utafrali/WishlistGo/internal/repository"
	pkgkafka "github.com/utafrali/WishlistGo/pkg/kafka"
)

// --- Mock Repositories ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Create(ctx context.Context, w *domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWishlistRepository) GetByID(ctx context.Context, id int64) (*domain.Wishlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepository) List(ctx context.Context, filter repository.WishlistFilter) ([]domain.Wishlist, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Wishlist), args.Int(1), args.Error(2)
}

func (m *mockWishlistRepository) Update(ctx context.Context, w *domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWishlistRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListByWishlist(ctx context.Context, wishlistID int64, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, wishlistID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListByWishlistIDs(ctx context.Context, wishlistIDs []int64) (map[int64][]domain.Product, error) {
	args := m.Called(ctx, wishlistIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// noopPublisher discards events so tests never touch a Kafka broker.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

func newTestProducer() *event.Producer {
	return event.NewProducer(noopPublisher{}, newTestLogger())
}

func newTestWishlistService(repo *mockWishlistRepository, productRepo *mockProductRepository) *WishlistService {
	return NewWishlistService(repo, productRepo, newTestProducer(), newTestLogger())
}

func newTestProductService(repo *mockProductRepository, wishlistRepo *mockWishlistRepository) *ProductService {
	return NewProductService(repo, wishlistRepo, newTestProducer(), newTestLogger())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }
