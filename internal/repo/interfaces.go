// Package repo declares the storage capability consumed by the usecases.
// Two backends implement it: mongodb (document store) and jsonfile (whole-file
// JSON collections). Both must produce identical observable results for the
// same filter, sort and limit inputs; only durability and concurrency
// guarantees differ.
package repo

import (
	"context"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
)

type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ListWithTotal(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// CodeExists reports whether another product (excluding excludeID when
	// non-empty) already uses code.
	CodeExists(ctx context.Context, code, excludeID string) (bool, error)
	Insert(ctx context.Context, product *models.Product) (*models.Product, error)
	Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type CartRepository interface {
	List(ctx context.Context) ([]models.Cart, error)
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	Insert(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	Replace(ctx context.Context, id string, cart *models.Cart) (*models.Cart, error)
	Delete(ctx context.Context, id string) error
}
