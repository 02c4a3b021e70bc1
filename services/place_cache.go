package services

import (
	"TravelMate/models"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedPlaceProvider keeps successful details and photo lookups in Redis.
// Searches are not cached. Cache failures fall through to the provider.
type CachedPlaceProvider struct {
	PlaceProvider
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedPlaceProvider(provider PlaceProvider, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedPlaceProvider {
	return &CachedPlaceProvider{
		PlaceProvider: provider,
		redis:         client,
		ttl:           ttl,
		logger:        logger,
	}
}

func detailsKey(id string) string { return "place:details:" + id }
func photosKey(id string) string  { return "place:photos:" + id }

func (c *CachedPlaceProvider) GetDetails(ctx context.Context, id string) (*models.CandidatePlace, error) {
	var place models.CandidatePlace
	if c.load(ctx, detailsKey(id), &place) {
		return &place, nil
	}

	fresh, err := c.PlaceProvider.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, detailsKey(id), fresh)
	return fresh, nil
}

func (c *CachedPlaceProvider) GetPhotos(ctx context.Context, id string) ([]string, error) {
	var photos []string
	if c.load(ctx, photosKey(id), &photos) {
		return photos, nil
	}

	fresh, err := c.PlaceProvider.GetPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, photosKey(id), fresh)
	return fresh, nil
}

func (c *CachedPlaceProvider) load(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn("place cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("place cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CachedPlaceProvider) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("place cache write failed", zap.String("key", key), zap.Error(err))
	}
}
