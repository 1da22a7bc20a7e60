package handler

import (
	"hire-rank/internal/delivery/http/dto"
	"hire-rank/internal/pkg/response"
	"hire-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type WeightsHandler struct {
	uc usecase.RankingUsecase
}

func NewWeightsHandler(uc usecase.RankingUsecase) *WeightsHandler {
	return &WeightsHandler{uc: uc}
}

func (h *WeightsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/weights")
	grp.Get("/default", h.Default)
	grp.Post("/validate", h.Validate)
}

func (h *WeightsHandler) Default(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.DefaultWeights())
}

// Validate always answers 200; the verdict is in the body.
func (h *WeightsHandler) Validate(c fiber.Ctx) error {
	var req dto.WeightsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.ValidateWeights(req.Weights()))
}
