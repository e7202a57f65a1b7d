package jsonfile

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
)

var _ repo.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	coll *collection[models.Product]
}

func NewProductRepository(dataDir string) repo.ProductRepository {
	return &productRepo{
		coll: newCollection[models.Product](dataDir, "products"),
	}
}

func (r *productRepo) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products := applyFilter(r.coll.load(), filter)
	return products, nil
}

func (r *productRepo) ListWithTotal(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error) {
	unlimited := filter
	unlimited.Limit = 0
	matched := applyFilter(r.coll.load(), unlimited)
	page := &models.ProductPage{
		Total:    int64(len(matched)),
		Products: matched,
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		page.Products = matched[:filter.Limit]
	}
	return page, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range r.coll.load() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *productRepo) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	for _, p := range r.coll.load() {
		if p.Code == code && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *productRepo) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	stored := *product
	err := r.coll.update(func(items []models.Product) ([]models.Product, error) {
		now := time.Now()
		stored.ID = nextID(items, func(p models.Product) string { return p.ID })
		stored.CreatedAt = now
		stored.UpdatedAt = now
		return append(items, stored), nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *productRepo) Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	stored := *product
	err := r.coll.update(func(items []models.Product) ([]models.Product, error) {
		for i, p := range items {
			if p.ID != id {
				continue
			}
			stored.ID = p.ID
			stored.CreatedAt = p.CreatedAt
			stored.UpdatedAt = time.Now()
			items[i] = stored
			return items, nil
		}
		return nil, models.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.coll.update(func(items []models.Product) ([]models.Product, error) {
		for i, p := range items {
			if p.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, models.ErrNotFound
	})
}

// applyFilter mirrors the document-store predicates in memory: substring
// category match (case-insensitive), exact status match, stable price sort,
// then limit. Iteration order is insertion order.
func applyFilter(products []models.Product, filter models.ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	category := strings.ToLower(filter.Category)
	for _, p := range products {
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	switch filter.Sort {
	case models.SortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case models.SortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out
}
