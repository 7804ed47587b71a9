package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/pkg/utils"
	"github.com/greasemeter/place-index/internal/pkg/validator"
	"github.com/greasemeter/place-index/internal/usecase"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// ReviewHandler proxies review reads and writes.
type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
	logger   *zap.Logger
}

func NewReviewHandler(reviewUC *usecase.ReviewUseCase, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// ListReviews godoc
// @Summary List reviews for a place
// @Description Returns a page of reviews with field aliases (comment/stars) normalized.
// @Tags Reviews
// @Produce json
// @Param id path string true "Place id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.ReviewsResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	req := dto.ListReviewsRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.New(
			errors.ErrInvalidRequest.Code, err.Error(), fiber.StatusBadRequest))
	}

	result, err := h.reviewUC.ListReviews(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Page:  req.Page,
		Limit: req.Limit,
	})
}

// CreateReview godoc
// @Summary Post a review
// @Description Creates a review for the place on the caller's behalf.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Place id"
// @Param request body dto.CreateReviewRequest true "Review"
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.New(
			errors.ErrInvalidRequest.Code, err.Error(), fiber.StatusBadRequest))
	}

	if err := h.reviewUC.CreateReview(c.Context(), bearerToken(c), c.Params("id"), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"created": true}, nil)
}
