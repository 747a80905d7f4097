package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/event"
	"github.com/utafrali/WishlistGo/internal/repository"
	"github.com/utafrali/WishlistGo/internal/service"
	"github.com/utafrali/WishlistGo/pkg/health"
	pkgkafka "github.com/utafrali/WishlistGo/pkg/kafka"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) Create(ctx context.Context, w *domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWishlistRepo) GetByID(ctx context.Context, id int64) (*domain.Wishlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepo) List(ctx context.Context, filter repository.WishlistFilter) ([]domain.Wishlist, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Wishlist), args.Int(1), args.Error(2)
}

func (m *mockWishlistRepo) Update(ctx context.Context, w *domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWishlistRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) ListByWishlist(ctx context.Context, wishlistID int64, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, wishlistID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) ListByWishlistIDs(ctx context.Context, wishlistIDs []int64) (map[int64][]domain.Product, error) {
	args := m.Called(ctx, wishlistIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]domain.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Test helpers
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// noopPublisher discards events so handler tests never touch a Kafka broker.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

func testEventProducer() *event.Producer {
	return event.NewProducer(noopPublisher{}, testLogger())
}

// newTestRouter builds the full router, middleware included, on top of the
// given mock repositories.
func newTestRouter(t *testing.T, wishlistRepo *mockWishlistRepo, productRepo *mockProductRepo) http.Handler {
	t.Helper()

	logger := testLogger()
	producer := testEventProducer()
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, producer, logger)
	productService := service.NewProductService(productRepo, wishlistRepo, producer, logger)

	return NewRouter(wishlistService, productService, health.NewHandler(), logger)
}

func sampleWishlist() *domain.Wishlist {
	return &domain.Wishlist{ID: 4, Name: "Birthday", UserID: "john", Products: []domain.Product{}}
}
