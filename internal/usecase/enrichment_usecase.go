package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/domain/repository"
	"github.com/greasemeter/place-index/internal/pkg/errors"
)

// EnrichmentUseCase fetches per-place detail patches, consulting the shared
// Redis cache before the backend and writing fetched patches through. It is
// shared by every map session; the per-session metadata cache sits above it.
type EnrichmentUseCase struct {
	placesRepo repository.PlacesRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
	cacheTTL   time.Duration
}

func NewEnrichmentUseCase(
	placesRepo repository.PlacesRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *EnrichmentUseCase {
	return &EnrichmentUseCase{
		placesRepo: placesRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// FetchDetail returns the detail patch for a place, cache-first. A nil patch
// with nil error means the backend had nothing usable for this id. Cache
// failures degrade to a backend fetch, never to an error.
func (uc *EnrichmentUseCase) FetchDetail(ctx context.Context, id string) (*domain.PlacePatch, error) {
	if uc.cacheRepo != nil {
		patch, err := uc.cacheRepo.GetPlaceDetail(ctx, id)
		if err != nil {
			uc.logger.Warn("Detail cache read failed",
				zap.String("place_id", id), zap.Error(err))
		} else if patch != nil {
			return patch, nil
		}
	}

	patch, err := uc.placesRepo.PlaceDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return nil, nil
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetPlaceDetail(ctx, id, patch, uc.cacheTTL); err != nil {
			uc.logger.Warn("Detail cache write failed",
				zap.String("place_id", id), zap.Error(err))
		}
	}

	return patch, nil
}

// GetPlace builds an enriched place view for a single id.
func (uc *EnrichmentUseCase) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	patch, err := uc.FetchDetail(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to fetch place detail",
			zap.String("place_id", id), zap.Error(err))
		return nil, errors.ErrUpstreamError
	}
	if patch == nil {
		return nil, errors.ErrPlaceNotFound
	}

	place := domain.Place{ID: id, Name: domain.UnnamedPlace}
	place.Apply(patch)
	return &place, nil
}

// Resolve fills in the coordinates of a place that lacks a usable pair.
// Detail is tried first, then the secondary info record; the place comes back
// unchanged when neither yields a finite pair.
func (uc *EnrichmentUseCase) Resolve(ctx context.Context, place domain.Place) domain.Place {
	if hasUsableCoordinates(place) {
		return place
	}

	if patch, err := uc.FetchDetail(ctx, place.ID); err == nil && patch.HasCoordinates() {
		place.Latitude = *patch.Latitude
		place.Longitude = *patch.Longitude
		return place
	}

	patch, err := uc.placesRepo.PlaceInfo(ctx, place.ID)
	if err != nil {
		uc.logger.Warn("Place info lookup failed",
			zap.String("place_id", place.ID), zap.Error(err))
		return place
	}
	if patch.HasCoordinates() {
		place.Latitude = *patch.Latitude
		place.Longitude = *patch.Longitude
	}
	return place
}

// hasUsableCoordinates treats the zero pair as unresolved: search results
// that arrived without coordinates carry (0, 0).
func hasUsableCoordinates(p domain.Place) bool {
	return p.HasFiniteCoordinates() && (p.Latitude != 0 || p.Longitude != 0)
}
