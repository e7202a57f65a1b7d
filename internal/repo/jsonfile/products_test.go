package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(code string, price float64) *models.Product {
	return &models.Product{
		Title:       "Pen",
		Description: "Blue pen",
		Code:        code,
		Price:       price,
		Status:      true,
		Stock:       10,
		Category:    "office",
		Thumbnails:  []string{},
	}
}

func TestProductRepoAssignsSequentialIDs(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	first, err := repo.Insert(ctx, newTestProduct("P1", 1.5))
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())

	second, err := repo.Insert(ctx, newTestProduct("P2", 2.5))
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)

	// Deleting the highest id and inserting again reuses it: ids are
	// monotonic over the current collection, not globally unique.
	require.NoError(t, repo.Delete(ctx, "2"))
	third, err := repo.Insert(ctx, newTestProduct("P3", 3.5))
	require.NoError(t, err)
	assert.Equal(t, "2", third.ID)
}

func TestProductRepoMissingFileIsEmpty(t *testing.T) {
	repo := NewProductRepository(t.TempDir())

	products, err := repo.List(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepoCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))

	repo := NewProductRepository(dir)
	ctx := context.Background()

	products, err := repo.List(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)

	// Inserting over a corrupt file starts the collection from scratch.
	stored, err := repo.Insert(ctx, newTestProduct("P1", 1.5))
	require.NoError(t, err)
	assert.Equal(t, "1", stored.ID)
}

func TestProductRepoGetByID(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	stored, err := repo.Insert(ctx, newTestProduct("P1", 1.5))
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1", found.Code)
	assert.Equal(t, 1.5, found.Price)
	assert.Equal(t, 10, found.Stock)

	_, err = repo.GetByID(ctx, "999")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductRepoFilterSortLimit(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	cheap := newTestProduct("P1", 1.0)
	cheap.Category = "Office"
	mid := newTestProduct("P2", 5.0)
	mid.Category = "kitchen"
	expensive := newTestProduct("P3", 9.0)
	expensive.Category = "office supplies"
	expensive.Status = false

	for _, p := range []*models.Product{mid, expensive, cheap} {
		_, err := repo.Insert(ctx, p)
		require.NoError(t, err)
	}

	t.Run("category substring is case-insensitive", func(t *testing.T) {
		products, err := repo.List(ctx, models.ProductFilter{Category: "OFFICE"})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "P3", products[0].Code)
		assert.Equal(t, "P1", products[1].Code)
	})

	t.Run("status match is exact", func(t *testing.T) {
		inactive := false
		products, err := repo.List(ctx, models.ProductFilter{Status: &inactive})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "P3", products[0].Code)
	})

	t.Run("sort by price", func(t *testing.T) {
		products, err := repo.List(ctx, models.ProductFilter{Sort: models.SortAsc})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, 1.0, products[0].Price)
		assert.Equal(t, 9.0, products[2].Price)

		products, err = repo.List(ctx, models.ProductFilter{Sort: models.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, 9.0, products[0].Price)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		products, err := repo.List(ctx, models.ProductFilter{Sort: models.SortAsc, Limit: 2})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, 1.0, products[0].Price)
	})

	t.Run("list with total ignores limit for the count", func(t *testing.T) {
		page, err := repo.ListWithTotal(ctx, models.ProductFilter{Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
		assert.Len(t, page.Products, 1)
	})
}

func TestProductRepoCodeExists(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	stored, err := repo.Insert(ctx, newTestProduct("P1", 1.5))
	require.NoError(t, err)

	exists, err := repo.CodeExists(ctx, "P1", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CodeExists(ctx, "P1", stored.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.CodeExists(ctx, "P2", "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepoReplace(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	stored, err := repo.Insert(ctx, newTestProduct("P1", 1.5))
	require.NoError(t, err)

	updated := *stored
	updated.Price = 2.0
	replaced, err := repo.Replace(ctx, stored.ID, &updated)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, replaced.ID)
	assert.Equal(t, 2.0, replaced.Price)
	assert.Equal(t, stored.CreatedAt.Unix(), replaced.CreatedAt.Unix())
	assert.False(t, replaced.UpdatedAt.Before(stored.UpdatedAt))

	_, err = repo.Replace(ctx, "999", &updated)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductRepoDelete(t *testing.T) {
	repo := NewProductRepository(t.TempDir())
	ctx := context.Background()

	stored, err := repo.Insert(ctx, newTestProduct("P1", 1.5))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, stored.ID))
	assert.ErrorIs(t, repo.Delete(ctx, stored.ID), models.ErrNotFound)

	products, err := repo.List(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}
