package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Aidin1998/trivia/pkg/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CategoryCache holds the category list between requests. Categories are
// read-only through the API, so a TTL is the only invalidation.
type CategoryCache interface {
	Get(ctx context.Context) ([]models.Category, bool)
	Set(ctx context.Context, categories []models.Category)
}

const categoryCacheKey = "trivia:categories"

// RedisCategoryCache stores the category list as JSON under a single key.
// Redis failures degrade to cache misses.
type RedisCategoryCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCategoryCache creates a cache backed by client.
func NewRedisCategoryCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RedisCategoryCache {
	return &RedisCategoryCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCategoryCache) Get(ctx context.Context) ([]models.Category, bool) {
	data, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Category cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		c.logger.Warn("Category cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return categories, true
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories []models.Category) {
	data, err := json.Marshal(categories)
	if err != nil {
		c.logger.Warn("Category cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, categoryCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Category cache write failed", zap.Error(err))
	}
}
