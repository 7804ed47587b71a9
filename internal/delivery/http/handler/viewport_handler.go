package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/pkg/utils"
	"github.com/greasemeter/place-index/internal/pkg/validator"
	"github.com/greasemeter/place-index/internal/usecase"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// ViewportHandler serves decluttered markers for the visible map region.
type ViewportHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewViewportHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *ViewportHandler {
	return &ViewportHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// GetMarkers godoc
// @Summary Refresh the viewport and get markers
// @Description Fetches the places intersecting the viewport, declutters them onto a grid and returns at most one marker per occupied cell. On a backend failure the previous marker set is returned with stale=true.
// @Tags Viewport
// @Produce json
// @Param session_id query string true "Session id"
// @Param lat query number true "Viewport center latitude"
// @Param lng query number true "Viewport center longitude"
// @Param lat_delta query number true "Visible latitude span"
// @Param lng_delta query number true "Visible longitude span"
// @Success 200 {object} utils.SuccessResponse{data=dto.MarkersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/viewport/markers [get]
func (h *ViewportHandler) GetMarkers(c *fiber.Ctx) error {
	req := dto.ViewportRequest{
		SessionID: c.Query("session_id"),
		Lat:       c.QueryFloat("lat"),
		Lng:       c.QueryFloat("lng"),
		LatDelta:  c.QueryFloat("lat_delta"),
		LngDelta:  c.QueryFloat("lng_delta"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.New(
			errors.ErrInvalidRequest.Code, err.Error(), fiber.StatusBadRequest))
	}

	index, err := h.sessionUC.Get(req.SessionID)
	if err != nil {
		return utils.SendError(c, err)
	}

	viewport := domain.Viewport{
		Latitude:       req.Lat,
		Longitude:      req.Lng,
		LatitudeDelta:  req.LatDelta,
		LongitudeDelta: req.LngDelta,
	}

	result, err := index.Refresh(c.Context(), viewport)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
