package postgres

import (
	"context"
	"math"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/WishlistGo/internal/domain"
	"github.com/utafrali/WishlistGo/internal/repository"
	"github.com/utafrali/WishlistGo/pkg/database"
	apperrors "github.com/utafrali/WishlistGo/pkg/errors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var wishlistColumns = []string{"id", "name", "userid"}

var wishlistColumnsWithCount = []string{"id", "name", "userid", "total_count"}

func TestWishlistRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	w := domain.Wishlist{Name: "Birthday", UserID: "john"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO wishlists").
		WithArgs(w.Name, w.UserID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &w)
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Create_WithProducts(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	w := domain.Wishlist{
		Name:   "Birthday",
		UserID: "john",
		Products: []domain.Product{
			{Name: "Lego", Price: decimal.RequireFromString("49.99"), Quantity: 1},
			{Name: "Bike", Price: decimal.RequireFromString("120.50"), Quantity: 2, IsGift: true},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO wishlists").
		WithArgs("Birthday", "john").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(int64(7), "Lego", "49.99", 1, "", (*string)(nil), false, false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(int64(7), "Bike", "120.5", 2, "", (*string)(nil), true, false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(22)))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &w)
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.ID)
	assert.Equal(t, int64(21), w.Products[0].ID)
	assert.Equal(t, int64(22), w.Products[1].ID)
	assert.Equal(t, int64(7), w.Products[0].WishlistID)
	assert.Equal(t, int64(7), w.Products[1].WishlistID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Create_ProductFailureRollsBack(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	w := domain.Wishlist{
		Name:   "Birthday",
		UserID: "john",
		Products: []domain.Product{
			{Name: "Lego", Price: decimal.RequireFromString("49.99"), Quantity: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO wishlists").
		WithArgs("Birthday", "john").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(int64(7), "Lego", "49.99", 1, "", (*string)(nil), false, false).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &w)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectQuery("SELECT id, name, userid FROM wishlists WHERE id").
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(wishlistColumns).AddRow(int64(4), "Birthday", "john"))

	w, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), w.ID)
	assert.Equal(t, "Birthday", w.Name)
	assert.Equal(t, "john", w.UserID)
	assert.NotNil(t, w.Products)
	assert.Empty(t, w.Products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectQuery("SELECT id, name, userid FROM wishlists WHERE id").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	w, err := repo.GetByID(context.Background(), 99)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_List_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectQuery("SELECT id, name, userid, count").
		WithArgs(10, 0).
		WillReturnRows(
			pgxmock.NewRows(wishlistColumnsWithCount).
				AddRow(int64(1), "Birthday", "john", 2).
				AddRow(int64(2), "Christmas", "jane", 2),
		)

	wishlists, total, err := repo.List(context.Background(), repository.WishlistFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, wishlists, 2)
	assert.Equal(t, "Birthday", wishlists[0].Name)
	assert.Equal(t, "Christmas", wishlists[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_List_NameFilterAndPaging(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectQuery("SELECT id, name, userid, count").
		WithArgs("Birthday", 5, 5).
		WillReturnRows(
			pgxmock.NewRows(wishlistColumnsWithCount).
				AddRow(int64(6), "Birthday", "john", 6),
		)

	wishlists, total, err := repo.List(context.Background(), repository.WishlistFilter{
		Name:  strPtr("Birthday"),
		Page:  2,
		Limit: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	require.Len(t, wishlists, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectQuery("SELECT id, name, userid, count").
		WithArgs(10, 90).
		WillReturnRows(pgxmock.NewRows(wishlistColumnsWithCount))

	wishlists, total, err := repo.List(context.Background(), repository.WishlistFilter{Page: 10, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, wishlists)
	assert.Empty(t, wishlists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_List_HugePageDoesNotOverflow(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	// An absurd page number must land past the end of the data, never
	// wrap around into a negative OFFSET.
	mock.ExpectQuery("SELECT id, name, userid, count").
		WithArgs(10, math.MaxInt32).
		WillReturnRows(pgxmock.NewRows(wishlistColumnsWithCount))

	wishlists, total, err := repo.List(context.Background(), repository.WishlistFilter{
		Page:  math.MaxInt,
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, wishlists)
	assert.Empty(t, wishlists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Update_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	w := domain.Wishlist{ID: 4, Name: "Renamed", UserID: "john"}

	mock.ExpectExec("UPDATE wishlists").
		WithArgs(w.Name, w.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), &w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	w := domain.Wishlist{ID: 99, Name: "Renamed"}

	mock.ExpectExec("UPDATE wishlists").
		WithArgs(w.Name, w.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &w)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products WHERE wishlist_id").
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM wishlists WHERE id").
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewWishlistRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products WHERE wishlist_id").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM wishlists WHERE id").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
