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

// BookmarkHandler proxies bookmark management and place recommendations.
type BookmarkHandler struct {
	bookmarkUC *usecase.BookmarkUseCase
	logger     *zap.Logger
}

func NewBookmarkHandler(bookmarkUC *usecase.BookmarkUseCase, logger *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkUC: bookmarkUC,
		logger:     logger,
	}
}

// AddBookmark godoc
// @Summary Bookmark a place
// @Tags Bookmarks
// @Produce json
// @Param id path string true "Place id"
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/{id}/bookmarks [post]
func (h *BookmarkHandler) AddBookmark(c *fiber.Ctx) error {
	if err := h.bookmarkUC.AddBookmark(c.Context(), bearerToken(c), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"bookmarked": true}, nil)
}

// ListBookmarks godoc
// @Summary List the caller's bookmarks
// @Tags Bookmarks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} utils.SuccessResponse{data=dto.BookmarksResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/my/bookmarks [get]
func (h *BookmarkHandler) ListBookmarks(c *fiber.Ctx) error {
	result, err := h.bookmarkUC.ListBookmarks(c.Context(), bearerToken(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// DeleteBookmark godoc
// @Summary Delete a bookmark
// @Tags Bookmarks
// @Produce json
// @Param id path string true "Bookmark id"
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/my/bookmarks/{id} [delete]
func (h *BookmarkHandler) DeleteBookmark(c *fiber.Ctx) error {
	if err := h.bookmarkUC.DeleteBookmark(c.Context(), bearerToken(c), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// RecommendPlace godoc
// @Summary Recommend a place
// @Description Submits a user recommendation for a place that is not in the catalogue yet.
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param request body dto.RecommendPlaceRequest true "Recommendation"
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/recommend [post]
func (h *BookmarkHandler) RecommendPlace(c *fiber.Ctx) error {
	var req dto.RecommendPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.New(
			errors.ErrInvalidRequest.Code, err.Error(), fiber.StatusBadRequest))
	}

	if err := h.bookmarkUC.RecommendPlace(c.Context(), bearerToken(c), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"recommended": true}, nil)
}
