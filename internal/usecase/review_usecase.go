package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/domain/repository"
	"github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// ReviewUseCase proxies review reads and writes to the places backend.
type ReviewUseCase struct {
	placesRepo repository.PlacesRepository
	logger     *zap.Logger
}

func NewReviewUseCase(placesRepo repository.PlacesRepository, logger *zap.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		placesRepo: placesRepo,
		logger:     logger,
	}
}

// ListReviews returns a normalized page of reviews for a place.
func (uc *ReviewUseCase) ListReviews(ctx context.Context, placeID string, req dto.ListReviewsRequest) (*dto.ReviewsResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	reviews, err := uc.placesRepo.ListReviews(ctx, placeID, req.Page, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to list reviews",
			zap.String("place_id", placeID), zap.Error(err))
		return nil, errors.ErrUpstreamError
	}

	return &dto.ReviewsResponse{
		Reviews: reviews,
		Total:   len(reviews),
	}, nil
}

// CreateReview posts a review on the caller's behalf.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, token, placeID string, req dto.CreateReviewRequest) error {
	if token == "" {
		return errors.ErrUnauthorized
	}

	review := domain.NewReview{Rating: req.Rating, Text: req.Text}
	if err := uc.placesRepo.CreateReview(ctx, token, placeID, review); err != nil {
		uc.logger.Error("Failed to create review",
			zap.String("place_id", placeID), zap.Error(err))
		return errors.ErrUpstreamError
	}

	return nil
}
