package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo/jsonfile"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls [][]models.Product
}

func (f *fakeBroadcaster) BroadcastProducts(ctx context.Context, products []models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, products)
}

func (f *fakeBroadcaster) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBroadcaster) lastCall() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func newProductUsecase(t *testing.T) (usecase.ProductUsecase, *fakeBroadcaster) {
	t.Helper()
	broadcaster := &fakeBroadcaster{}
	uc := usecase.NewProductUsecase(jsonfile.NewProductRepository(t.TempDir()), broadcaster)
	return uc, broadcaster
}

func penInput() models.ProductInput {
	price := 1.5
	stock := 10
	return models.ProductInput{
		Title:       "Pen",
		Description: "Blue pen",
		Code:        "P1",
		Price:       &price,
		Stock:       &stock,
		Category:    "office",
	}
}

func TestCreateProductRoundTrip(t *testing.T) {
	uc, broadcaster := newProductUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, penInput())
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.True(t, created.Status)
	assert.Equal(t, []string{}, created.Thumbnails)
	assert.Equal(t, 1, broadcaster.callCount())

	found, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", found.Title)
	assert.Equal(t, "Blue pen", found.Description)
	assert.Equal(t, "P1", found.Code)
	assert.Equal(t, 1.5, found.Price)
	assert.Equal(t, 10, found.Stock)
	assert.Equal(t, "office", found.Category)
}

func TestCreateProductValidation(t *testing.T) {
	uc, broadcaster := newProductUsecase(t)
	ctx := context.Background()

	var validationErr *models.ValidationError

	t.Run("missing required field", func(t *testing.T) {
		input := penInput()
		input.Title = ""
		_, err := uc.Create(ctx, input)
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("price must be positive", func(t *testing.T) {
		input := penInput()
		zero := 0.0
		input.Price = &zero
		_, err := uc.Create(ctx, input)
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("stock must not be negative", func(t *testing.T) {
		input := penInput()
		negative := -1
		input.Stock = &negative
		_, err := uc.Create(ctx, input)
		assert.ErrorAs(t, err, &validationErr)
	})

	assert.Zero(t, broadcaster.callCount())
}

func TestCreateProductDuplicateCode(t *testing.T) {
	uc, broadcaster := newProductUsecase(t)
	ctx := context.Background()

	original, err := uc.Create(ctx, penInput())
	require.NoError(t, err)

	duplicate := penInput()
	duplicate.Title = "Another pen"
	_, err = uc.Create(ctx, duplicate)

	var duplicateErr *models.DuplicateCodeError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "P1", duplicateErr.Code)

	// Only the first create notified; the existing product is untouched.
	assert.Equal(t, 1, broadcaster.callCount())
	found, err := uc.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", found.Title)
}

func TestUpdateProductPartial(t *testing.T) {
	uc, broadcaster := newProductUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, penInput())
	require.NoError(t, err)

	newPrice := 2.5
	updated, err := uc.Update(ctx, created.ID, models.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Price)
	assert.Equal(t, "Pen", updated.Title)
	assert.Equal(t, "P1", updated.Code)
	assert.Equal(t, 2, broadcaster.callCount())
	assert.Equal(t, 2.5, broadcaster.lastCall()[0].Price)
}

func TestUpdateProductCodeChecks(t *testing.T) {
	uc, _ := newProductUsecase(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, penInput())
	require.NoError(t, err)

	second := penInput()
	second.Code = "P2"
	other, err := uc.Create(ctx, second)
	require.NoError(t, err)

	t.Run("taking another product's code fails", func(t *testing.T) {
		code := "P1"
		_, err := uc.Update(ctx, other.ID, models.ProductUpdate{Code: &code})
		var duplicateErr *models.DuplicateCodeError
		assert.ErrorAs(t, err, &duplicateErr)
	})

	t.Run("keeping your own code is fine", func(t *testing.T) {
		code := "P1"
		updated, err := uc.Update(ctx, first.ID, models.ProductUpdate{Code: &code})
		require.NoError(t, err)
		assert.Equal(t, "P1", updated.Code)
	})
}

func TestUpdateProductNotFound(t *testing.T) {
	uc, _ := newProductUsecase(t)

	title := "Marker"
	_, err := uc.Update(context.Background(), "999", models.ProductUpdate{Title: &title})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	uc, broadcaster := newProductUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, penInput())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Equal(t, 2, broadcaster.callCount())
	assert.Empty(t, broadcaster.lastCall())

	err = uc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The failed delete neither notified nor changed the listing.
	assert.Equal(t, 2, broadcaster.callCount())
	products, err := uc.List(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}
