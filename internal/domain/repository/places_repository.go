package repository

import (
	"context"

	"github.com/greasemeter/place-index/internal/domain"
)

// PlacesRepository talks to the external places backend. List-returning
// calls already apply envelope normalization and per-record validation, so
// every returned Place has finite coordinates unless stated otherwise.
type PlacesRepository interface {
	// PlacesInViewport fetches the places intersecting the viewport.
	PlacesInViewport(ctx context.Context, vp domain.Viewport) ([]domain.Place, error)

	// SearchPlaces runs a free-text search. Results lacking resolvable
	// coordinates are returned with zero coordinates; callers decide the
	// fallback (the index substitutes the viewport center).
	SearchPlaces(ctx context.Context, term string) ([]domain.Place, error)

	// PlaceDetail fetches the per-place detail record as a partial patch.
	PlaceDetail(ctx context.Context, id string) (*domain.PlacePatch, error)

	// PlaceInfo fetches the secondary per-place info record, used as a
	// coordinate-resolution fallback when detail yields none.
	PlaceInfo(ctx context.Context, id string) (*domain.PlacePatch, error)

	ListReviews(ctx context.Context, placeID string, page, limit int) ([]domain.Review, error)
	CreateReview(ctx context.Context, token, placeID string, review domain.NewReview) error

	AddBookmark(ctx context.Context, token, placeID string) error
	ListBookmarks(ctx context.Context, token string) ([]domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, token, bookmarkID string) error

	RecommendPlace(ctx context.Context, token string, rec domain.Recommendation) error
}
