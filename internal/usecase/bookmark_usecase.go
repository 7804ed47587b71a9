package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/domain/repository"
	"github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// BookmarkUseCase proxies bookmark management and place recommendations to
// the places backend on the caller's behalf.
type BookmarkUseCase struct {
	placesRepo repository.PlacesRepository
	logger     *zap.Logger
}

func NewBookmarkUseCase(placesRepo repository.PlacesRepository, logger *zap.Logger) *BookmarkUseCase {
	return &BookmarkUseCase{
		placesRepo: placesRepo,
		logger:     logger,
	}
}

func (uc *BookmarkUseCase) AddBookmark(ctx context.Context, token, placeID string) error {
	if token == "" {
		return errors.ErrUnauthorized
	}

	if err := uc.placesRepo.AddBookmark(ctx, token, placeID); err != nil {
		uc.logger.Error("Failed to add bookmark",
			zap.String("place_id", placeID), zap.Error(err))
		return errors.ErrUpstreamError
	}
	return nil
}

func (uc *BookmarkUseCase) ListBookmarks(ctx context.Context, token string) (*dto.BookmarksResponse, error) {
	if token == "" {
		return nil, errors.ErrUnauthorized
	}

	bookmarks, err := uc.placesRepo.ListBookmarks(ctx, token)
	if err != nil {
		uc.logger.Error("Failed to list bookmarks", zap.Error(err))
		return nil, errors.ErrUpstreamError
	}

	return &dto.BookmarksResponse{
		Bookmarks: bookmarks,
		Total:     len(bookmarks),
	}, nil
}

func (uc *BookmarkUseCase) DeleteBookmark(ctx context.Context, token, bookmarkID string) error {
	if token == "" {
		return errors.ErrUnauthorized
	}

	if err := uc.placesRepo.DeleteBookmark(ctx, token, bookmarkID); err != nil {
		uc.logger.Error("Failed to delete bookmark",
			zap.String("bookmark_id", bookmarkID), zap.Error(err))
		return errors.ErrUpstreamError
	}
	return nil
}

// RecommendPlace submits a user recommendation for a place that is not in
// the catalogue yet.
func (uc *BookmarkUseCase) RecommendPlace(ctx context.Context, token string, req dto.RecommendPlaceRequest) error {
	if token == "" {
		return errors.ErrUnauthorized
	}

	rec := domain.Recommendation{Name: req.Name, Address: req.Address}
	if err := uc.placesRepo.RecommendPlace(ctx, token, rec); err != nil {
		uc.logger.Error("Failed to recommend place",
			zap.String("name", req.Name), zap.Error(err))
		return errors.ErrUpstreamError
	}
	return nil
}
