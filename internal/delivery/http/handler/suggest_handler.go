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

// SuggestHandler serves the debounced place search.
type SuggestHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewSuggestHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SuggestHandler {
	return &SuggestHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Suggest godoc
// @Summary Debounced place search
// @Description Treats each call as a keystroke: the fetch is dispatched only after the debounce quiet period, and its result is applied only when no later keystroke overtook it (applied=false otherwise). An empty q clears the session's suggestions immediately.
// @Tags Search
// @Produce json
// @Param session_id query string true "Session id"
// @Param q query string false "Search term; empty clears suggestions"
// @Param lat query number false "Viewport center latitude, fallback for unresolved suggestion coordinates"
// @Param lng query number false "Viewport center longitude"
// @Param lat_delta query number false "Visible latitude span"
// @Param lng_delta query number false "Visible longitude span"
// @Success 200 {object} utils.SuccessResponse{data=dto.SuggestionsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/search/suggest [get]
func (h *SuggestHandler) Suggest(c *fiber.Ctx) error {
	req := dto.SuggestRequest{
		SessionID: c.Query("session_id"),
		Query:     c.Query("q"),
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

	result, err := index.Suggest(c.Context(), req.Query, viewport)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Suggestions),
	})
}
