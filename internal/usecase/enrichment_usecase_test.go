package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	apperrors "github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/usecase"
)

func TestEnrichmentUseCase_FetchDetail(t *testing.T) {
	ctx := context.Background()
	ttl := time.Minute

	t.Run("cache hit skips the backend", func(t *testing.T) {
		name := "Pat's"
		repo := new(MockPlacesRepository)
		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetPlaceDetail", mock.Anything, "p1").
			Return(&domain.PlacePatch{ID: "p1", Name: &name}, nil)

		uc := usecase.NewEnrichmentUseCase(repo, cacheRepo, zap.NewNop(), ttl)

		patch, err := uc.FetchDetail(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, patch)
		assert.Equal(t, "Pat's", *patch.Name)

		repo.AssertNotCalled(t, "PlaceDetail")
	})

	t.Run("cache miss fetches and writes through", func(t *testing.T) {
		name := "Geno's"
		patch := &domain.PlacePatch{ID: "p2", Name: &name}

		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p2").Return(patch, nil)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetPlaceDetail", mock.Anything, "p2").Return(nil, nil)
		cacheRepo.On("SetPlaceDetail", mock.Anything, "p2", patch, ttl).Return(nil)

		uc := usecase.NewEnrichmentUseCase(repo, cacheRepo, zap.NewNop(), ttl)

		got, err := uc.FetchDetail(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, patch, got)

		cacheRepo.AssertCalled(t, "SetPlaceDetail", mock.Anything, "p2", patch, ttl)
	})

	t.Run("cache failure degrades to a backend fetch", func(t *testing.T) {
		name := "Dalessandro's"
		patch := &domain.PlacePatch{ID: "p3", Name: &name}

		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p3").Return(patch, nil)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetPlaceDetail", mock.Anything, "p3").Return(nil, errors.New("redis down"))
		cacheRepo.On("SetPlaceDetail", mock.Anything, "p3", patch, ttl).Return(errors.New("redis down"))

		uc := usecase.NewEnrichmentUseCase(repo, cacheRepo, zap.NewNop(), ttl)

		got, err := uc.FetchDetail(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, patch, got)
	})

	t.Run("nothing usable yields nil without caching", func(t *testing.T) {
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p4").Return(nil, nil)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetPlaceDetail", mock.Anything, "p4").Return(nil, nil)

		uc := usecase.NewEnrichmentUseCase(repo, cacheRepo, zap.NewNop(), ttl)

		patch, err := uc.FetchDetail(ctx, "p4")
		require.NoError(t, err)
		assert.Nil(t, patch)

		cacheRepo.AssertNotCalled(t, "SetPlaceDetail")
	})
}

func TestEnrichmentUseCase_GetPlace(t *testing.T) {
	ctx := context.Background()

	t.Run("builds an enriched place", func(t *testing.T) {
		name := "Reading Terminal Market"
		addr := "51 N 12th St"
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p1").
			Return(&domain.PlacePatch{ID: "p1", Name: &name, Address: &addr}, nil)

		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		place, err := uc.GetPlace(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", place.ID)
		assert.Equal(t, name, place.Name)
		assert.Equal(t, addr, place.Address)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "ghost").Return(nil, nil)

		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		_, err := uc.GetPlace(ctx, "ghost")
		assert.Equal(t, apperrors.ErrPlaceNotFound, err)
	})

	t.Run("backend failure maps to upstream error", func(t *testing.T) {
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p1").Return(nil, errors.New("boom"))

		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		_, err := uc.GetPlace(ctx, "p1")
		assert.Equal(t, apperrors.ErrUpstreamError, err)
	})
}

func TestEnrichmentUseCase_Resolve(t *testing.T) {
	ctx := context.Background()
	lat, lng := 39.95, -75.165

	t.Run("usable coordinates pass through untouched", func(t *testing.T) {
		repo := new(MockPlacesRepository)
		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		place := domain.Place{ID: "p1", Latitude: lat, Longitude: lng}
		assert.Equal(t, place, uc.Resolve(ctx, place))

		repo.AssertNotCalled(t, "PlaceDetail")
		repo.AssertNotCalled(t, "PlaceInfo")
	})

	t.Run("detail lookup resolves first", func(t *testing.T) {
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p1").
			Return(&domain.PlacePatch{ID: "p1", Latitude: &lat, Longitude: &lng}, nil)

		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		resolved := uc.Resolve(ctx, domain.Place{ID: "p1"})
		assert.Equal(t, lat, resolved.Latitude)
		assert.Equal(t, lng, resolved.Longitude)

		repo.AssertNotCalled(t, "PlaceInfo")
	})

	t.Run("info lookup is the fallback", func(t *testing.T) {
		name := "no coordinates here"
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p1").
			Return(&domain.PlacePatch{ID: "p1", Name: &name}, nil)
		repo.On("PlaceInfo", mock.Anything, "p1").
			Return(&domain.PlacePatch{ID: "p1", Latitude: &lat, Longitude: &lng}, nil)

		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		resolved := uc.Resolve(ctx, domain.Place{ID: "p1"})
		assert.Equal(t, lat, resolved.Latitude)
		assert.Equal(t, lng, resolved.Longitude)
	})

	t.Run("unresolvable place comes back unchanged", func(t *testing.T) {
		repo := new(MockPlacesRepository)
		repo.On("PlaceDetail", mock.Anything, "p1").Return(nil, nil)
		repo.On("PlaceInfo", mock.Anything, "p1").Return(nil, errors.New("boom"))

		uc := usecase.NewEnrichmentUseCase(repo, nil, zap.NewNop(), time.Minute)

		place := domain.Place{ID: "p1", Name: "Somewhere"}
		assert.Equal(t, place, uc.Resolve(ctx, place))
	})
}
