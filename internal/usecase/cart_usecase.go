package usecase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
)

// CartUsecase owns the cart lifecycle. Product references inside line items
// are opaque here: callers verify product existence against the catalog
// before AddProduct, and references are never revalidated afterwards.
type CartUsecase interface {
	Create(ctx context.Context) (*models.Cart, error)
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	AddProduct(ctx context.Context, cartID, productID string) (*models.Cart, error)
	RemoveProduct(ctx context.Context, cartID, productID string) (*models.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, items []models.LineItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error)
	Clear(ctx context.Context, cartID string) (*models.Cart, error)
}

type cartUsecase struct {
	carts    repo.CartRepository
	resolver ProductResolver
}

func NewCartUsecase(carts repo.CartRepository, resolver ProductResolver) CartUsecase {
	return &cartUsecase{
		carts:    carts,
		resolver: resolver,
	}
}

func (uc *cartUsecase) Create(ctx context.Context) (*models.Cart, error) {
	cart, err := uc.carts.Insert(ctx, &models.Cart{Items: []models.LineItem{}})
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

func (uc *cartUsecase) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	cart, err := uc.carts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.resolveItems(ctx, cart), nil
}

func (uc *cartUsecase) AddProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	cart, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(productID); i >= 0 {
		cart.Items[i].Quantity++
	} else {
		cart.Items = append(cart.Items, models.LineItem{ProductID: productID, Quantity: 1})
	}

	return uc.persist(ctx, cart)
}

func (uc *cartUsecase) RemoveProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	cart, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	// Removal is idempotent: a missing line item is not an error.
	if i := cart.FindItem(productID); i >= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	return uc.persist(ctx, cart)
}

func (uc *cartUsecase) ReplaceItems(ctx context.Context, cartID string, items []models.LineItem) (*models.Cart, error) {
	if items == nil {
		return nil, models.NewValidationError("products must be an array")
	}

	cart, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	// Wholesale replacement; quantities are the caller's responsibility
	// here and are enforced by UpdateQuantity.
	cart.Items = items
	return uc.persist(ctx, cart)
}

func (uc *cartUsecase) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, models.NewValidationError("quantity must be greater than 0")
	}

	cart, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	cart.Items[i].Quantity = quantity

	return uc.persist(ctx, cart)
}

func (uc *cartUsecase) Clear(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.Items = []models.LineItem{}
	return uc.persist(ctx, cart)
}

func (uc *cartUsecase) persist(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	for i := range cart.Items {
		cart.Items[i].Product = nil
	}
	stored, err := uc.carts.Replace(ctx, cart.ID, cart)
	if err != nil {
		return nil, fmt.Errorf("persist cart %s: %w", cart.ID, err)
	}
	return uc.resolveItems(ctx, stored), nil
}

// resolveItems attaches product snapshots to line items via an explicit
// catalog lookup. A reference whose product has since been deleted keeps a
// nil snapshot rather than failing the read.
func (uc *cartUsecase) resolveItems(ctx context.Context, cart *models.Cart) *models.Cart {
	for i, item := range cart.Items {
		product, err := uc.resolver.GetByID(ctx, item.ProductID)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Warnw(ctx, "skip product resolution", "product_id", item.ProductID, "error", err)
			continue
		}
		cart.Items[i].Product = product
	}
	return cart
}
