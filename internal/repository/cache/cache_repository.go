package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetPlaceDetail returns the cached detail patch for a place, nil on miss.
func (r *cacheRepository) GetPlaceDetail(ctx context.Context, id string) (*domain.PlacePatch, error) {
	data, err := r.Get(ctx, detailKey(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var patch domain.PlacePatch
	if err := json.Unmarshal(data, &patch); err != nil {
		r.logger.Error("Failed to unmarshal place detail from cache",
			zap.String("place_id", id), zap.Error(err))
		return nil, fmt.Errorf("unmarshal place detail: %w", err)
	}

	return &patch, nil
}

// SetPlaceDetail stores a detail patch for a place.
func (r *cacheRepository) SetPlaceDetail(ctx context.Context, id string, patch *domain.PlacePatch, ttl time.Duration) error {
	data, err := json.Marshal(patch)
	if err != nil {
		r.logger.Error("Failed to marshal place detail",
			zap.String("place_id", id), zap.Error(err))
		return fmt.Errorf("marshal place detail: %w", err)
	}

	return r.Set(ctx, detailKey(id), data, ttl)
}

// GetSuggestions returns cached suggestions for a search term, nil on miss.
func (r *cacheRepository) GetSuggestions(ctx context.Context, term string) ([]domain.Place, error) {
	data, err := r.Get(ctx, suggestKey(term))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var places []domain.Place
	if err := json.Unmarshal(data, &places); err != nil {
		r.logger.Error("Failed to unmarshal suggestions from cache",
			zap.String("term", term), zap.Error(err))
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}

	return places, nil
}

// SetSuggestions stores the suggestion list for a search term.
func (r *cacheRepository) SetSuggestions(ctx context.Context, term string, places []domain.Place, ttl time.Duration) error {
	data, err := json.Marshal(places)
	if err != nil {
		r.logger.Error("Failed to marshal suggestions",
			zap.String("term", term), zap.Error(err))
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	return r.Set(ctx, suggestKey(term), data, ttl)
}

func detailKey(id string) string {
	return "place:detail:" + id
}

func suggestKey(term string) string {
	return "search:suggest:" + term
}
