package handler

import (
	"strings"

	"hire-rank/internal/delivery/http/dto"
	"hire-rank/internal/delivery/http/middleware"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/export"
	"hire-rank/internal/pkg/response"
	"hire-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RankingHandler struct {
	uc usecase.RankingUsecase
}

func NewRankingHandler(uc usecase.RankingUsecase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

func (h *RankingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	jobs := r.Group("/jobs/:job_id")
	jobs.Post("/rankings", h.Generate)
	jobs.Put("/rankings/weights", h.RecalculateWithWeights)
	jobs.Get("/rankings", h.List)
	jobs.Get("/rankings/statistics", h.Statistics)
	jobs.Get("/rankings/export/:format", h.Export)
	jobs.Delete("/rankings", h.DeleteAllForJob)
	jobs.Get("/candidates/:candidate_id/ranking", h.GetForCandidate)
	jobs.Get("/candidates/:candidate_id/ranking/history", h.History)

	grp := r.Group("/rankings")
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
	grp.Patch("/:id/shortlist", h.UpdateShortlist)
	grp.Patch("/:id/hiring-status", h.UpdateHiringStatus)
	grp.Patch("/:id/interview", h.ScheduleInterview)
	grp.Patch("/:id/feedback", h.AddFeedback)
	grp.Patch("/:id/notes", h.UpdateNotes)
}

// Generate ranks the job's latest matches. An empty body uses the default
// weights.
func (h *RankingHandler) Generate(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}

	var weights *ranking.Weights
	if len(c.Body()) > 0 {
		var req dto.WeightsRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		w := req.Weights()
		weights = &w
	}

	rows, err := h.uc.GenerateRanking(c.Context(), jobID, weights)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewRankingResponses(rows))
}

func (h *RankingHandler) RecalculateWithWeights(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	var req dto.WeightsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	rows, err := h.uc.RecalculateRankingWithWeights(c.Context(), jobID, req.Weights())
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponses(rows))
}

// List returns the current snapshot, narrowed by at most one of
// shortlisted, top, min_score or q.
func (h *RankingHandler) List(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	minScore, hasMin, err := parseQueryFloat(c, "min_score")
	if err != nil {
		return err
	}

	var rows []ranking.Ranking
	switch {
	case c.Query("shortlisted") == "true":
		rows, err = h.uc.GetShortlisted(c.Context(), jobID)
	case c.Query("top") != "":
		rows, err = h.uc.GetTopRanked(c.Context(), jobID, parseQueryInt(c, "top", 0))
	case hasMin:
		rows, err = h.uc.GetRankingsByMinimumScore(c.Context(), jobID, minScore)
	case strings.TrimSpace(c.Query("q")) != "":
		rows, err = h.uc.SearchRankings(c.Context(), jobID, c.Query("q"))
	default:
		rows, err = h.uc.GetCurrentRankings(c.Context(), jobID)
	}
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponses(rows))
}

func (h *RankingHandler) Statistics(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	st, err := h.uc.RankingStatistics(c.Context(), jobID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func (h *RankingHandler) Export(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}

	var f export.File
	switch strings.ToLower(c.Params("format")) {
	case "csv":
		f, err = h.uc.ExportCSV(c.Context(), jobID)
	case "xlsx":
		f, err = h.uc.ExportXLSX(c.Context(), jobID)
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported export format", nil, nil)
	}
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Attachment(c, f.Name, f.ContentType, f.Data)
}

func (h *RankingHandler) DeleteAllForJob(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return err
	}
	n, err := h.uc.DeleteAllRankingsForJob(c.Context(), jobID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DeletedResponse{Deleted: n})
}

func (h *RankingHandler) GetForCandidate(c fiber.Ctx) error {
	jobID, candidateID, err := jobCandidateParams(c)
	if err != nil {
		return err
	}
	row, err := h.uc.GetCurrentRankingForCandidate(c.Context(), jobID, candidateID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponse(row))
}

func (h *RankingHandler) History(c fiber.Ctx) error {
	jobID, candidateID, err := jobCandidateParams(c)
	if err != nil {
		return err
	}
	rows, err := h.uc.GetRankingHistory(c.Context(), jobID, candidateID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponses(rows))
}

func (h *RankingHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	row, err := h.uc.GetRanking(c.Context(), id)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponse(row))
}

func (h *RankingHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteRanking(c.Context(), id); err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *RankingHandler) UpdateShortlist(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ShortlistRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	row, err := h.uc.UpdateShortlistStatus(c.Context(), id, req.Shortlisted, req.Notes)
	return h.workflowResult(c, row, err)
}

func (h *RankingHandler) UpdateHiringStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.HiringStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	status, err := ranking.ParseHiringStatus(req.Status)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	row, err := h.uc.UpdateHiringStatus(c.Context(), id, status, req.Notes)
	return h.workflowResult(c, row, err)
}

func (h *RankingHandler) ScheduleInterview(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.InterviewRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.InterviewDate.IsZero() {
		return middleware.NewAppError(fiber.StatusBadRequest, "interview_date is required", nil, nil)
	}
	row, err := h.uc.ScheduleInterview(c.Context(), id, req.InterviewDate, req.Notes)
	return h.workflowResult(c, row, err)
}

func (h *RankingHandler) AddFeedback(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	row, err := h.uc.AddInterviewFeedback(c.Context(), id, req.Feedback)
	return h.workflowResult(c, row, err)
}

func (h *RankingHandler) UpdateNotes(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.NotesRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	row, err := h.uc.UpdateNotes(c.Context(), id, req.Notes)
	return h.workflowResult(c, row, err)
}

func (h *RankingHandler) workflowResult(c fiber.Ctx, row ranking.Ranking, err error) error {
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponse(row))
}

func jobCandidateParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	candidateID, err := parseIDParam(c, "candidate_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return jobID, candidateID, nil
}
