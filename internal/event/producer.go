package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/utafrali/WishlistGo/internal/domain"
	pkgkafka "github.com/utafrali/WishlistGo/pkg/kafka"
)

// Aggregate type constants.
const (
	AggregateTypeWishlist = "wishlist"
	AggregateTypeProduct  = "product"
)

// Kafka topics for wishlist domain events.
var (
	TopicWishlistCreated = pkgkafka.Topic(AggregateTypeWishlist, "created")
	TopicWishlistUpdated = pkgkafka.Topic(AggregateTypeWishlist, "updated")
	TopicWishlistDeleted = pkgkafka.Topic(AggregateTypeWishlist, "deleted")
	TopicProductCreated  = pkgkafka.Topic(AggregateTypeProduct, "created")
	TopicProductUpdated  = pkgkafka.Topic(AggregateTypeProduct, "updated")
	TopicProductDeleted  = pkgkafka.Topic(AggregateTypeProduct, "deleted")
)

// Source identifier for events originating from the wishlist service.
const SourceWishlistService = "wishlist-service"

// WishlistData is the payload for wishlist.created and wishlist.updated events.
type WishlistData struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userid"`
}

// WishlistDeletedData is the payload for a wishlist.deleted event.
type WishlistDeletedData struct {
	ID int64 `json:"id"`
}

// ProductData is the payload for product.created and product.updated events.
type ProductData struct {
	ID         int64           `json:"id"`
	WishlistID int64           `json:"wishlist_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	IsGift     bool            `json:"is_gift"`
	Purchased  bool            `json:"purchased"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID         int64 `json:"id"`
	WishlistID int64 `json:"wishlist_id"`
}

// Publisher delivers a serialized event to a topic. *pkgkafka.Producer is
// the production implementation.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes wishlist domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer for the wishlist service.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishWishlistCreated publishes a wishlist.created event.
func (p *Producer) PublishWishlistCreated(ctx context.Context, w *domain.Wishlist) error {
	return p.publishWishlist(ctx, TopicWishlistCreated, w)
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, w *domain.Wishlist) error {
	return p.publishWishlist(ctx, TopicWishlistUpdated, w)
}

func (p *Producer) publishWishlist(ctx context.Context, topic string, w *domain.Wishlist) error {
	data := WishlistData{ID: w.ID, Name: w.Name, UserID: w.UserID}

	event, err := pkgkafka.NewEvent(topic, strconv.FormatInt(w.ID, 10), AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published wishlist event",
		slog.String("topic", topic),
		slog.Int64("wishlist_id", w.ID),
	)

	return nil
}

// PublishWishlistDeleted publishes a wishlist.deleted event.
func (p *Producer) PublishWishlistDeleted(ctx context.Context, id int64) error {
	data := WishlistDeletedData{ID: id}

	event, err := pkgkafka.NewEvent(TopicWishlistDeleted, strconv.FormatInt(id, 10), AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create wishlist.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistDeleted, event); err != nil {
		return fmt.Errorf("publish wishlist.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist event",
		slog.String("topic", TopicWishlistDeleted),
		slog.Int64("wishlist_id", id),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publishProduct(ctx, TopicProductCreated, product)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publishProduct(ctx, TopicProductUpdated, product)
}

func (p *Producer) publishProduct(ctx context.Context, topic string, product *domain.Product) error {
	data := ProductData{
		ID:         product.ID,
		WishlistID: product.WishlistID,
		Name:       product.Name,
		Price:      product.Price,
		Quantity:   product.Quantity,
		IsGift:     product.IsGift,
		Purchased:  product.Purchased,
	}

	event, err := pkgkafka.NewEvent(topic, strconv.FormatInt(product.ID, 10), AggregateTypeProduct, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published product event",
		slog.String("topic", topic),
		slog.Int64("product_id", product.ID),
		slog.Int64("wishlist_id", product.WishlistID),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id, wishlistID int64) error {
	data := ProductDeletedData{ID: id, WishlistID: wishlistID}

	event, err := pkgkafka.NewEvent(TopicProductDeleted, strconv.FormatInt(id, 10), AggregateTypeProduct, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product event",
		slog.String("topic", TopicProductDeleted),
		slog.Int64("product_id", id),
		slog.Int64("wishlist_id", wishlistID),
	)

	return nil
}
