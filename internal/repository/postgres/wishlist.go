package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/repository"
	"github.com/utafrali/WishlistGo/pkg/database"
	apperrors "github.com/utafrali/WishlistGo/pkg/errors"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	pool database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool database.DBTX) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// Create inserts a wishlist together with any products already attached to
// it, in one transaction. Generated ids are assigned to the wishlist and to
// each product; a failing product insert rolls back the wishlist row too.
func (r *WishlistRepository) Create(ctx context.Context, w *domain.Wishlist) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create wishlist: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO wishlists (name, userid)
		VALUES ($1, $2)
		RETURNING id`

	if err := tx.QueryRow(ctx, query, w.Name, w.UserID).Scan(&w.ID); err != nil {
		return fmt.Errorf("insert wishlist: %w", err)
	}

	for i := range w.Products {
		p := &w.Products[i]
		p.WishlistID = w.ID

		err := tx.QueryRow(ctx, insertProductQuery,
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
			return fmt.Errorf("insert wishlist product: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create wishlist: %w", err)
	}

	return nil
}

// GetByID retrieves a wishlist by its ID. Products are not populated here;
// the service layer attaches them.
func (r *WishlistRepository) GetByID(ctx context.Context, id int64) (*domain.Wishlist, error) {
	query := `
		SELECT id, name, userid
		FROM wishlists
		WHERE id = $1`

	var w domain.Wishlist
	err := r.pool.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Wishlist", id)
		}
		return nil, fmt.Errorf("scan wishlist: %w", err)
	}

	w.Products = []domain.Product{}
	return &w, nil
}

// List returns wishlists matching the given filter with the total count.
func (r *WishlistRepository) List(ctx context.Context, filter repository.WishlistFilter) ([]domain.Wishlist, int, error) {
	var (
		whereClause = ""
		args        []any
		argIndex    = 1
	)

	if filter.Name != nil {
		whereClause = fmt.Sprintf("WHERE name = $%d", argIndex)
		args = append(args, *filter.Name)
		argIndex++
	}

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT id, name, userid, count(*) OVER() AS total_count
		FROM wishlists
		%s
		ORDER BY id
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := 0
	if filter.Page > 1 {
		// Guard the multiplication: an extreme page value must land past the
		// end of the data (empty page), not overflow into a negative OFFSET.
		if filter.Page-1 > math.MaxInt32/limit {
			offset = math.MaxInt32
		} else {
			offset = (filter.Page - 1) * limit
		}
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlists: %w", err)
	}
	defer rows.Close()

	var (
		wishlists  []domain.Wishlist
		totalCount int
	)

	for rows.Next() {
		var w domain.Wishlist
		if err := rows.Scan(&w.ID, &w.Name, &w.UserID, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan wishlist row: %w", err)
		}
		w.Products = []domain.Product{}
		wishlists = append(wishlists, w)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	if wishlists == nil {
		wishlists = []domain.Wishlist{}
	}

	return wishlists, totalCount, nil
}

// Update modifies an existing wishlist. The owner id never changes.
func (r *WishlistRepository) Update(ctx context.Context, w *domain.Wishlist) error {
	query := `
		UPDATE wishlists
		SET name = $1
		WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, w.Name, w.ID)
	if err != nil {
		return fmt.Errorf("update wishlist: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Wishlist", w.ID)
	}

	return nil
}

// Delete removes a wishlist and its products in one transaction. The FK on
// products has ON DELETE CASCADE, but the delete is explicit so the behavior
// does not depend on the schema definition.
func (r *WishlistRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete wishlist: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE wishlist_id = $1`, id); err != nil {
		return fmt.Errorf("delete wishlist products: %w", err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Wishlist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete wishlist: %w", err)
	}

	return nil
}
