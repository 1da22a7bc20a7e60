package handler

import (
	"errors"

	"hire-rank/internal/delivery/http/middleware"
	"hire-rank/internal/pkg/response"
	"hire-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrMatchResultNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match result not found", nil, err)
	case errors.Is(err, usecase.ErrNoResume):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Candidate has no profile data", nil, err)
	case errors.Is(err, usecase.ErrStaleMatchResult):
		return middleware.NewAppError(fiber.StatusConflict, "Match result is no longer the latest", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapRankingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrRankingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Ranking not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidWeightConfiguration):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid weight configuration", fiber.Map{"detail": err.Error()}, err)
	case errors.Is(err, usecase.ErrInvalidHiringStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid hiring status", nil, err)
	case errors.Is(err, usecase.ErrNoMatchData):
		return middleware.NewAppError(fiber.StatusConflict, "No match results for job", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", fiber.Map{"detail": err.Error()}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
