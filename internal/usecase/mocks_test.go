package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/greasemeter/place-index/internal/domain"
)

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) PlacesInViewport(ctx context.Context, vp domain.Viewport) ([]domain.Place, error) {
	args := m.Called(ctx, vp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

func (m *MockPlacesRepository) SearchPlaces(ctx context.Context, term string) ([]domain.Place, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

func (m *MockPlacesRepository) PlaceDetail(ctx context.Context, id string) (*domain.PlacePatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacePatch), args.Error(1)
}

func (m *MockPlacesRepository) PlaceInfo(ctx context.Context, id string) (*domain.PlacePatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacePatch), args.Error(1)
}

func (m *MockPlacesRepository) ListReviews(ctx context.Context, placeID string, page, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, placeID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockPlacesRepository) CreateReview(ctx context.Context, token, placeID string, review domain.NewReview) error {
	args := m.Called(ctx, token, placeID, review)
	return args.Error(0)
}

func (m *MockPlacesRepository) AddBookmark(ctx context.Context, token, placeID string) error {
	args := m.Called(ctx, token, placeID)
	return args.Error(0)
}

func (m *MockPlacesRepository) ListBookmarks(ctx context.Context, token string) ([]domain.Bookmark, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bookmark), args.Error(1)
}

func (m *MockPlacesRepository) DeleteBookmark(ctx context.Context, token, bookmarkID string) error {
	args := m.Called(ctx, token, bookmarkID)
	return args.Error(0)
}

func (m *MockPlacesRepository) RecommendPlace(ctx context.Context, token string, rec domain.Recommendation) error {
	args := m.Called(ctx, token, rec)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetPlaceDetail(ctx context.Context, id string) (*domain.PlacePatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacePatch), args.Error(1)
}

func (m *MockCacheRepository) SetPlaceDetail(ctx context.Context, id string, patch *domain.PlacePatch, ttl time.Duration) error {
	args := m.Called(ctx, id, patch, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSuggestions(ctx context.Context, term string) ([]domain.Place, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

func (m *MockCacheRepository) SetSuggestions(ctx context.Context, term string, places []domain.Place, ttl time.Duration) error {
	args := m.Called(ctx, term, places, ttl)
	return args.Error(0)
}
