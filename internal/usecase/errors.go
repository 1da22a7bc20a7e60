package usecase

import (
	"errors"

	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/repository"
)

var (
	ErrJobNotFound         = repository.ErrJobNotFound
	ErrCandidateNotFound   = repository.ErrCandidateNotFound
	ErrMatchResultNotFound = repository.ErrMatchResultNotFound
	ErrRankingNotFound     = repository.ErrRankingNotFound
	ErrStaleMatchResult    = repository.ErrStaleMatchResult

	ErrInvalidWeightConfiguration = ranking.ErrInvalidWeightConfiguration
	ErrInvalidHiringStatus        = ranking.ErrInvalidHiringStatus

	ErrNoResume     = errors.New("candidate has no resume or profile data")
	ErrNoMatchData  = errors.New("no match results for job")
	ErrInvalidInput = errors.New("invalid input")
)
