package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/events"
	"github.com/zetroo/catalog-service/internal/repository"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// ProductService exposes catalog operations.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, dispatcher: dispatcher, logger: logger}
}

// CreateProduct inserts the product on behalf of the admin identified by actor.
// The document is stored as given, apart from a server assigned id.
func (s *ProductService) CreateProduct(ctx context.Context, actor string, product domain.Product) (primitive.ObjectID, error) {
	id, err := s.products.Create(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventProductCreated, id.Hex(), actor,
		events.ProductCreatedPayload{
			Name:     product.Text("name"),
			Category: product.Text("category"),
			Brand:    product.Text("brand"),
		}))
	return id, nil
}

// ListProducts returns the products matching filter.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

// GetProduct looks a product up by its hex id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, err
	}
	return product, nil
}
