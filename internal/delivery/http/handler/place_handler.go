package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/domain"
	"github.com/greasemeter/place-index/internal/pkg/utils"
	"github.com/greasemeter/place-index/internal/usecase"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// PlaceHandler serves enriched place detail and coordinate resolution.
type PlaceHandler struct {
	enrichmentUC *usecase.EnrichmentUseCase
	logger       *zap.Logger
}

func NewPlaceHandler(enrichmentUC *usecase.EnrichmentUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		enrichmentUC: enrichmentUC,
		logger:       logger,
	}
}

// GetPlace godoc
// @Summary Get enriched place detail
// @Description Returns the place's display metadata, consulting the shared detail cache before the backend.
// @Tags Places
// @Produce json
// @Param id path string true "Place id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaceResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/{id} [get]
func (h *PlaceHandler) GetPlace(c *fiber.Ctx) error {
	place, err := h.enrichmentUC.GetPlace(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PlaceResponse{Place: *place}, nil)
}

// ResolvePlace godoc
// @Summary Resolve a place's coordinates
// @Description Fills in coordinates for a place that lacks a usable pair, trying the detail record first and the secondary info record second. The place comes back unchanged when neither yields a finite pair.
// @Tags Places
// @Produce json
// @Param id path string true "Place id"
// @Param lat query number false "Known latitude, if any"
// @Param lng query number false "Known longitude, if any"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaceResponse}
// @Router /api/v1/places/{id}/resolve [get]
func (h *PlaceHandler) ResolvePlace(c *fiber.Ctx) error {
	place := domain.Place{
		ID:        c.Params("id"),
		Latitude:  c.QueryFloat("lat"),
		Longitude: c.QueryFloat("lng"),
	}

	resolved := h.enrichmentUC.Resolve(c.Context(), place)
	return utils.SendSuccess(c, dto.PlaceResponse{Place: resolved}, nil)
}
