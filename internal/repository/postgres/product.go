package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/repository"
	"github.com/utafrali/WishlistGo/pkg/database"
	apperrors "github.com/utafrali/WishlistGo/pkg/errors"
)

// Prices cross the pgx boundary as text to keep exact decimal values; the
// price column is NUMERIC(10,2).
const productColumns = `id, wishlist_id, name, price::text, quantity, description, note, is_gift, purchased`

// insertProductQuery is shared with the wishlist repository, which inserts
// inline products inside the wishlist creation transaction.
const insertProductQuery = `
	INSERT INTO products (wishlist_id, name, price, quantity, description, note, is_gift, purchased)
	VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)
	RETURNING id`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product and assigns its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	err := r.pool.QueryRow(ctx, insertProductQuery,
		p.WishlistID,
		p.Name,
		p.Price.String(),
		p.Quantity,
		p.Description,
		p.Note,
		p.IsGift,
		p.Purchased,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1`, productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return p, nil
}

// ListByWishlist returns the products of one wishlist matching the filter.
func (r *ProductRepository) ListByWishlist(ctx context.Context, wishlistID int64, filter repository.ProductFilter) ([]domain.Product, error) {
	conditions := []string{"wishlist_id = $1"}
	args := []any{wishlistID}
	argIndex := 2

	if filter.Name != nil {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.Name+"%")
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d::numeric", argIndex))
		args = append(args, filter.MinPrice.String())
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d::numeric", argIndex))
		args = append(args, filter.MaxPrice.String())
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY id`,
		productColumns, strings.Join(conditions, " AND "),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// ListByWishlistIDs returns the products of several wishlists in one query,
// keyed by wishlist id.
func (r *ProductRepository) ListByWishlistIDs(ctx context.Context, wishlistIDs []int64) (map[int64][]domain.Product, error) {
	result := make(map[int64][]domain.Product, len(wishlistIDs))
	if len(wishlistIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE wishlist_id = ANY($1)
		ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query, wishlistIDs)
	if err != nil {
		return nil, fmt.Errorf("list products by wishlist ids: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		result[p.WishlistID] = append(result[p.WishlistID], p)
	}

	return result, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, price = $2::numeric, quantity = $3, description = $4,
		    note = $5, is_gift = $6, purchased = $7
		WHERE id = $8`

	ct, err := r.pool.Exec(ctx, query,
		p.Name,
		p.Price.String(),
		p.Quantity,
		p.Description,
		p.Note,
		p.IsGift,
		p.Purchased,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Product", p.ID)
	}

	return nil
}

// Delete removes a product by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Product", id)
	}

	return nil
}

// scanProduct scans one product row, converting the text price back to a decimal.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p        domain.Product
		priceStr string
	)

	err := row.Scan(
		&p.ID,
		&p.WishlistID,
		&p.Name,
		&priceStr,
		&p.Quantity,
		&p.Description,
		&p.Note,
		&p.IsGift,
		&p.Purchased,
	)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("parse product price %q: %w", priceStr, err)
	}
	p.Price = price

	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
