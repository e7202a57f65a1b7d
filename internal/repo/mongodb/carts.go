package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
	"github.com/nguyentranbao-ct/shop-catalog/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repo.CartRepository = (*cartRepo)(nil)

type lineItemDoc struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Items     []lineItemDoc      `bson:"products"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d cartDoc) toModel() models.Cart {
	items := make([]models.LineItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return models.Cart{
		ID:        d.ID.Hex(),
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func cartToDoc(c *models.Cart) cartDoc {
	items := make([]lineItemDoc, len(c.Items))
	for i, item := range c.Items {
		items[i] = lineItemDoc{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type cartRepo struct {
	collection *mongo.Collection
}

func NewCartRepository(db *DB) repo.CartRepository {
	return &cartRepo{
		collection: db.Database.Collection("carts"),
	}
}

func (r *cartRepo) List(ctx context.Context) ([]models.Cart, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, &models.StorageError{Op: "find carts", Err: err}
	}
	var docs []cartDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &models.StorageError{Op: "decode carts", Err: err}
	}
	return util.ConvertList(docs, cartDoc.toModel), nil
}

func (r *cartRepo) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	var doc cartDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get cart", Err: err}
	}
	cart := doc.toModel()
	return &cart, nil
}

func (r *cartRepo) Insert(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	doc := cartToDoc(cart)
	doc.ID = primitive.NewObjectID()
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, &models.StorageError{Op: "insert cart", Err: err}
	}
	stored := doc.toModel()
	return &stored, nil
}

func (r *cartRepo) Replace(ctx context.Context, id string, cart *models.Cart) (*models.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	doc := cartToDoc(cart)
	doc.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"products":   doc.Items,
		"updated_at": doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated cartDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "replace cart", Err: err}
	}
	stored := updated.toModel()
	return &stored, nil
}

func (r *cartRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &models.StorageError{Op: "delete cart", Err: err}
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
