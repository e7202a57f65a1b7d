package jsonfile

import (
	"context"
	"time"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
)

var _ repo.CartRepository = (*cartRepo)(nil)

type cartRepo struct {
	coll *collection[models.Cart]
}

func NewCartRepository(dataDir string) repo.CartRepository {
	return &cartRepo{
		coll: newCollection[models.Cart](dataDir, "carts"),
	}
}

func (r *cartRepo) List(ctx context.Context) ([]models.Cart, error) {
	return r.coll.load(), nil
}

func (r *cartRepo) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	for _, c := range r.coll.load() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *cartRepo) Insert(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	stored := *cart
	if stored.Items == nil {
		stored.Items = []models.LineItem{}
	}
	err := r.coll.update(func(items []models.Cart) ([]models.Cart, error) {
		now := time.Now()
		stored.ID = nextID(items, func(c models.Cart) string { return c.ID })
		stored.CreatedAt = now
		stored.UpdatedAt = now
		return append(items, stored), nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *cartRepo) Replace(ctx context.Context, id string, cart *models.Cart) (*models.Cart, error) {
	stored := *cart
	if stored.Items == nil {
		stored.Items = []models.LineItem{}
	}
	err := r.coll.update(func(items []models.Cart) ([]models.Cart, error) {
		for i, c := range items {
			if c.ID != id {
				continue
			}
			stored.ID = c.ID
			stored.CreatedAt = c.CreatedAt
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

func (r *cartRepo) Delete(ctx context.Context, id string) error {
	return r.coll.update(func(items []models.Cart) ([]models.Cart, error) {
		for i, c := range items {
			if c.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, models.ErrNotFound
	})
}
