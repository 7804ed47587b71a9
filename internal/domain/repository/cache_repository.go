package repository

import (
	"context"
	"time"

	"github.com/greasemeter/place-index/internal/domain"
)

// CacheRepository is the shared response cache. A miss is (nil, nil).
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetPlaceDetail(ctx context.Context, id string) (*domain.PlacePatch, error)
	SetPlaceDetail(ctx context.Context, id string, patch *domain.PlacePatch, ttl time.Duration) error

	GetSuggestions(ctx context.Context, term string) ([]domain.Place, error)
	SetSuggestions(ctx context.Context, term string, places []domain.Place, ttl time.Duration) error
}
