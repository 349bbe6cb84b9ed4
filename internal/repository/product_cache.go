package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/zetroo/catalog-service/internal/domain"
)

const productCacheKeyPrefix = "catalog:product:"

// ProductCache stores product documents by id.
type ProductCache interface {
	Get(ctx context.Context, id string) (domain.Product, bool, error)
	Set(ctx context.Context, id string, product domain.Product) error
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache keeps JSON-encoded products in Redis for ttl.
func NewRedisProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	return &redisProductCache{client: client, ttl: ttl}
}

func (c *redisProductCache) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, productCacheKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, false, err
	}
	return product, true, nil
}

func (c *redisProductCache) Set(ctx context.Context, id string, product domain.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productCacheKeyPrefix+id, raw, c.ttl).Err()
}

type cachedProductRepository struct {
	ProductRepository
	cache  ProductCache
	logger *zap.Logger
}

// NewCachedProductRepository serves GetByID through cache. Products are never
// updated after insert, so entries need no invalidation. Cache failures are
// logged and fall through to the store. Entries are keyed by the canonical
// lowercase hex id.
func NewCachedProductRepository(next ProductRepository, cache ProductCache, logger *zap.Logger) ProductRepository {
	if cache == nil {
		return next
	}
	return &cachedProductRepository{ProductRepository: next, cache: cache, logger: logger}
}

func (r *cachedProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return r.ProductRepository.GetByID(ctx, id)
	}
	id = oid.Hex()

	product, ok, err := r.cache.Get(ctx, id)
	if err != nil {
		r.logger.Warn("product cache read failed", zap.String("product_id", id), zap.Error(err))
	} else if ok {
		return product, nil
	}

	product, err = r.ProductRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, id, product); err != nil {
		r.logger.Warn("product cache write failed", zap.String("product_id", id), zap.Error(err))
	}
	return product, nil
}
