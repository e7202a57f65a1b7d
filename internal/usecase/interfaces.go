package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
)

// CatalogBroadcaster pushes the refreshed catalog to live viewers after a
// successful product mutation. Implementations are fire-and-forget: they log
// delivery failures and must never block or fail the triggering mutation.
type CatalogBroadcaster interface {
	BroadcastProducts(ctx context.Context, products []models.Product)
}

type multiBroadcaster []CatalogBroadcaster

// NewMultiBroadcaster fans one notification out to every sink.
func NewMultiBroadcaster(broadcasters ...CatalogBroadcaster) CatalogBroadcaster {
	return multiBroadcaster(broadcasters)
}

func (m multiBroadcaster) BroadcastProducts(ctx context.Context, products []models.Product) {
	for _, b := range m {
		b.BroadcastProducts(ctx, products)
	}
}

// ProductResolver is the catalog lookup the cart usecase uses to attach
// product snapshots to line items when assembling a cart for return.
type ProductResolver interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}
