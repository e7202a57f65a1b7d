package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
	"github.com/nguyentranbao-ct/shop-catalog/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

var _ repo.ProductRepository = (*productRepo)(nil)

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Code        string             `bson:"code"`
	Price       float64            `bson:"price"`
	Status      bool               `bson:"status"`
	Stock       int                `bson:"stock"`
	Category    string             `bson:"category"`
	Thumbnails  []string           `bson:"thumbnails"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d productDoc) toModel() models.Product {
	thumbnails := d.Thumbnails
	if thumbnails == nil {
		thumbnails = []string{}
	}
	return models.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Code:        d.Code,
		Price:       d.Price,
		Status:      d.Status,
		Stock:       d.Stock,
		Category:    d.Category,
		Thumbnails:  thumbnails,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func productToDoc(p *models.Product) productDoc {
	return productDoc{
		Title:       p.Title,
		Description: p.Description,
		Code:        p.Code,
		Price:       p.Price,
		Status:      p.Status,
		Stock:       p.Stock,
		Category:    p.Category,
		Thumbnails:  p.Thumbnails,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type productRepo struct {
	collection *mongo.Collection
}

func NewProductRepository(db *DB) repo.ProductRepository {
	return &productRepo{
		collection: db.Database.Collection("products"),
	}
}

func buildProductFilter(filter models.ProductFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Category),
			Options: "i",
		}
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	return query
}

func buildFindOptions(filter models.ProductFilter) *options.FindOptions {
	opts := options.Find()
	switch filter.Sort {
	case models.SortAsc:
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case models.SortDesc:
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return opts
}

func (r *productRepo) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, buildProductFilter(filter), buildFindOptions(filter))
	if err != nil {
		return nil, &models.StorageError{Op: "find products", Err: err}
	}
	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &models.StorageError{Op: "decode products", Err: err}
	}
	return util.ConvertList(docs, productDoc.toModel), nil
}

func (r *productRepo) ListWithTotal(ctx context.Context, filter models.ProductFilter) (*models.ProductPage, error) {
	query := buildProductFilter(filter)
	var products []models.Product
	var total int64

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		cursor, err := r.collection.Find(ctx, query, buildFindOptions(filter))
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		var docs []productDoc
		if err := cursor.All(ctx, &docs); err != nil {
			return fmt.Errorf("cursor all: %w", err)
		}
		products = util.ConvertList(docs, productDoc.toModel)
		return nil
	})
	group.Go(func() error {
		var err error
		total, err = r.collection.CountDocuments(ctx, query)
		if err != nil {
			return fmt.Errorf("count documents: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, &models.StorageError{Op: "list products with total", Err: err}
	}

	return &models.ProductPage{Total: total, Products: products}, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	var doc productDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get product", Err: err}
	}
	product := doc.toModel()
	return &product, nil
}

func (r *productRepo) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	query := bson.M{"code": code}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			query["_id"] = bson.M{"$ne": oid}
		}
	}
	count, err := r.collection.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, &models.StorageError{Op: "check product code", Err: err}
	}
	return count > 0, nil
}

func (r *productRepo) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	doc := productToDoc(product)
	doc.ID = primitive.NewObjectID()
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, &models.StorageError{Op: "insert product", Err: err}
	}
	stored := doc.toModel()
	return &stored, nil
}

func (r *productRepo) Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	doc := productToDoc(product)
	doc.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"code":        doc.Code,
		"price":       doc.Price,
		"status":      doc.Status,
		"stock":       doc.Stock,
		"category":    doc.Category,
		"thumbnails":  doc.Thumbnails,
		"updated_at":  doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated productDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "replace product", Err: err}
	}
	stored := updated.toModel()
	return &stored, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &models.StorageError{Op: "delete product", Err: err}
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
