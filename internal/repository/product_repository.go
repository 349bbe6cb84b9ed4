package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zetroo/catalog-service/internal/domain"
)

// ProductRepository encapsulates catalog persistence. Documents are stored and
// returned without a fixed schema.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository instantiates repository.
func NewProductRepository(coll *mongo.Collection) ProductRepository {
	return &productRepository{coll: coll}
}

// Create stores the document with a server assigned id and records that id
// on product.
func (r *productRepository) Create(ctx context.Context, product domain.Product) (primitive.ObjectID, error) {
	product.ClearID()
	product.StampCreated(time.Now().UTC())
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id %T", res.InsertedID)
	}
	product.SetID(id)
	return id, nil
}

// GetByID treats a malformed id the same as a missing document.
func (r *productRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var product domain.Product
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&product); err != nil {
		return nil, translateErr(err)
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, BuildProductQuery(filter))
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
