package usecase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/go-playground/validator/v10"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
)

// ProductUsecase owns the product lifecycle: validation, code uniqueness and
// the catalog change notification after every successful mutation.
type ProductUsecase interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ListWithTotal(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productUsecase struct {
	products    repo.ProductRepository
	broadcaster CatalogBroadcaster
	validate    *validator.Validate
}

func NewProductUsecase(
	products repo.ProductRepository,
	broadcaster CatalogBroadcaster,
) ProductUsecase {
	return &productUsecase{
		products:    products,
		broadcaster: broadcaster,
		validate:    validator.New(),
	}
}

func (uc *productUsecase) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := uc.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (uc *productUsecase) ListWithTotal(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error) {
	page, err := uc.products.ListWithTotal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products with total: %w", err)
	}
	return page, nil
}

func (uc *productUsecase) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return uc.products.GetByID(ctx, id)
}

func (uc *productUsecase) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}

	exists, err := uc.products.CodeExists(ctx, input.Code, "")
	if err != nil {
		return nil, fmt.Errorf("check product code: %w", err)
	}
	if exists {
		return nil, &models.DuplicateCodeError{Code: input.Code}
	}

	product := &models.Product{
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Price:       *input.Price,
		Status:      true,
		Stock:       *input.Stock,
		Category:    input.Category,
		Thumbnails:  []string{},
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.Thumbnails != nil {
		product.Thumbnails = input.Thumbnails
	}

	stored, err := uc.products.Insert(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	uc.notifyCatalogChanged(ctx)
	return stored, nil
}

func (uc *productUsecase) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if err := uc.validate.Struct(update); err != nil {
		return nil, asValidationError(err)
	}

	current, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Code != nil && *update.Code != current.Code {
		exists, err := uc.products.CodeExists(ctx, *update.Code, id)
		if err != nil {
			return nil, fmt.Errorf("check product code: %w", err)
		}
		if exists {
			return nil, &models.DuplicateCodeError{Code: *update.Code}
		}
	}

	merged := *current
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Code != nil {
		merged.Code = *update.Code
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.Status != nil {
		merged.Status = *update.Status
	}
	if update.Stock != nil {
		merged.Stock = *update.Stock
	}
	if update.Category != nil {
		merged.Category = *update.Category
	}
	if update.Thumbnails != nil {
		merged.Thumbnails = *update.Thumbnails
	}

	stored, err := uc.products.Replace(ctx, id, &merged)
	if err != nil {
		return nil, err
	}

	uc.notifyCatalogChanged(ctx)
	return stored, nil
}

func (uc *productUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}

	uc.notifyCatalogChanged(ctx)
	return nil
}

// notifyCatalogChanged pushes the full refreshed catalog to every sink.
// Delivery is best-effort: a failed snapshot read is logged and dropped,
// never surfaced to the caller whose mutation already committed.
func (uc *productUsecase) notifyCatalogChanged(ctx context.Context) {
	products, err := uc.products.List(ctx, models.ProductFilter{})
	if err != nil {
		log.Errorw(ctx, "skip catalog broadcast, snapshot failed", "error", err)
		return
	}
	uc.broadcaster.BroadcastProducts(ctx, products)
}

func asValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return models.NewValidationError("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return models.NewValidationError("%v", err)
}
