package v1

import (
	"hire-rank/internal/delivery/http/handler"
	"hire-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Match   *handler.MatchHandler
	Ranking *handler.RankingHandler
	Weights *handler.WeightsHandler
}

func NewHandlers(matches usecase.MatchResultUsecase, rankings usecase.RankingUsecase) Handlers {
	return Handlers{
		Match:   handler.NewMatchHandler(matches),
		Ranking: handler.NewRankingHandler(rankings),
		Weights: handler.NewWeightsHandler(rankings),
	}
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Ranking != nil {
		h.Ranking.RegisterRoutes(r)
	}
	if h.Weights != nil {
		h.Weights.RegisterRoutes(r)
	}
}
