package handler

import (
	"hire-rank/internal/delivery/http/dto"
	"hire-rank/internal/pkg/response"
	"hire-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchResultUsecase
}

func NewMatchHandler(uc usecase.MatchResultUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	jobs := r.Group("/jobs/:job_id")
	jobs.Get("/matches", h.ListForJob)
	jobs.Get("/matches/statistics", h.Statistics)
	jobs.Post("/matches/process", h.ProcessAll)
	jobs.Post("/matches/recalculate", h.RecalculateAll)
	jobs.Delete("/matches", h.DeleteAllForJob)
	jobs.Post("/candidates/:candidate_id/match", h.CreateOrUpdate)
	jobs.Get("/candidates/:candidate_id/match", h.GetLatest)

	r.Get("/candidates/:candidate_id/matches", h.ListForCandidate)

	grp := r.Group("/matches")
	grp.Get("/:id", h.Get)
	grp.Post("/:id/recalculate", h.Recalculate)
	grp.Post("/:id/deactivate", h.Deactivate)
	grp.Delete("/:id", h.Delete)
}

func (h *MatchHandler) CreateOrUpdate(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	candidateID, err := parseIDParam(c, "candidate_id")
	if err != nil {
		return err
	}

	res, err := h.uc.CreateOrUpdateMatch(c.Context(), jobID, candidateID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewMatchResultResponse(res))
}

func (h *MatchHandler) GetLatest(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	candidateID, err := parseIDParam(c, "candidate_id")
	if err != nil {
		return err
	}

	res, err := h.uc.GetLatestMatch(c.Context(), jobID, candidateID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponse(res))
}

// ListForJob returns the latest active results. With limit set it returns
// the top scored results at or above min_score.
func (h *MatchHandler) ListForJob(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	minScore, hasMin, err := parseQueryFloat(c, "min_score")
	if err != nil {
		return err
	}
	limit := parseQueryInt(c, "limit", 0)

	if limit == 0 && !hasMin {
		items, err := h.uc.GetLatestMatchesForJob(c.Context(), jobID)
		if err != nil {
			return mapMatchUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(items))
	}

	if limit == 0 {
		limit = 10
	}
	items, err := h.uc.GetTopMatches(c.Context(), jobID, limit, minScore)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(items))
}

func (h *MatchHandler) Statistics(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	st, err := h.uc.MatchStatistics(c.Context(), jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func (h *MatchHandler) ProcessAll(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	report, err := h.uc.ProcessAllCandidatesForJob(c.Context(), jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *MatchHandler) RecalculateAll(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	report, err := h.uc.BatchRecalculateForJob(c.Context(), jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *MatchHandler) DeleteAllForJob(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	n, err := h.uc.DeleteAllForJob(c.Context(), jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DeletedResponse{Deleted: n})
}

func (h *MatchHandler) ListForCandidate(c fiber.Ctx) error {
	candidateID, err := parseIDParam(c, "candidate_id")
	if err != nil {
		return err
	}
	items, err := h.uc.GetMatchesForCandidate(c.Context(), candidateID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(items))
}

func (h *MatchHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.uc.GetMatchResult(c.Context(), id)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponse(res))
}

func (h *MatchHandler) Recalculate(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.uc.RecalculateScore(c.Context(), id)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponse(res))
}

func (h *MatchHandler) Deactivate(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeactivateMatchResult(c.Context(), id); err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *MatchHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteMatchResult(c.Context(), id); err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
