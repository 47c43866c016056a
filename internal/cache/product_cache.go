package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vybewear/vybe-backend/internal/product"
)

const notFoundMarker = "notfound"

// CachedProductRepository wraps a product repository with a Redis
// read-through cache. Single products plus the featured and limited
// shelves are cached; list and search queries always hit the database.
// Every Redis failure degrades to the underlying repository.
type CachedProductRepository struct {
	realRepo product.Repository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedProductRepository(realRepo product.Repository, redis *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      5 * time.Minute,
	}
}

func (c *CachedProductRepository) GetByID(id int) (product.Product, error) {
	ctx := context.Background()
	key := fmt.Sprintf("product:%d", id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return product.Product{}, product.ErrNotFound
		}
		var p product.Product
		if err := json.Unmarshal(data, &p); err != nil {
			log.Printf("failed to unmarshal cached product (continuing with DB): %v", err)
			break
		}
		return p, nil
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("redis error (continuing with DB): %v", err)
	}

	p, err := c.realRepo.GetByID(id)
	if errors.Is(err, product.ErrNotFound) {
		if setErr := c.redis.Set(ctx, key, notFoundMarker, 1*time.Minute).Err(); setErr != nil {
			log.Printf("failed to cache notfound: %v", setErr)
		}
		return product.Product{}, err
	}
	if err != nil {
		return product.Product{}, err
	}

	jsonData, err := json.Marshal(p)
	if err != nil {
		log.Printf("failed to marshal product: %v", err)
		return p, nil
	}
	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache product: %v", err)
	}

	return p, nil
}

func (c *CachedProductRepository) Featured(limit int) ([]product.Product, error) {
	return c.cachedShelf("products:featured", func() ([]product.Product, error) {
		return c.realRepo.Featured(limit)
	})
}

func (c *CachedProductRepository) Limited(limit int) ([]product.Product, error) {
	return c.cachedShelf("products:limited", func() ([]product.Product, error) {
		return c.realRepo.Limited(limit)
	})
}

func (c *CachedProductRepository) cachedShelf(key string, load func() ([]product.Product, error)) ([]product.Product, error) {
	ctx := context.Background()

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var products []product.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Printf("failed to unmarshal cached %s (continuing with DB): %v", key, err)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("redis error (continuing with DB): %v", err)
	}

	products, err := load()
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(products)
	if err != nil {
		log.Printf("failed to marshal %s: %v", key, err)
	} else if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache %s: %v", key, err)
	}

	return products, nil
}

func (c *CachedProductRepository) invalidate(productID int) {
	ctx := context.Background()
	keys := []string{
		fmt.Sprintf("product:%d", productID),
		"products:featured",
		"products:limited",
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("failed to invalidate product cache for %d: %v", productID, err)
	}
}

func (c *CachedProductRepository) List(q product.ListQuery) (product.Page, error) {
	return c.realRepo.List(q)
}

func (c *CachedProductRepository) Search(query string, limit int) ([]product.Product, error) {
	return c.realRepo.Search(query, limit)
}

func (c *CachedProductRepository) Create(p product.Product) (product.Product, error) {
	created, err := c.realRepo.Create(p)
	if err != nil {
		return product.Product{}, err
	}
	c.invalidate(created.ID)
	return created, nil
}

func (c *CachedProductRepository) Update(id int, p product.Product) (product.Product, error) {
	updated, err := c.realRepo.Update(id, p)
	if err != nil {
		return product.Product{}, err
	}
	c.invalidate(id)
	return updated, nil
}

func (c *CachedProductRepository) Deactivate(id int) error {
	if err := c.realRepo.Deactivate(id); err != nil {
		return err
	}
	c.invalidate(id)
	return nil
}

func (c *CachedProductRepository) IncrementSold(id, by int) error {
	if err := c.realRepo.IncrementSold(id, by); err != nil {
		return err
	}
	c.invalidate(id)
	return nil
}
