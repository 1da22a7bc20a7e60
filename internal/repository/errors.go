package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrMatchResultNotFound  = errors.New("match result not found")
	ErrRankingNotFound      = errors.New("ranking not found")
	ErrStaleMatchResult     = errors.New("match result is no longer the latest")
	ErrEmptyRankingSnapshot = errors.New("ranking snapshot is empty")
	ErrCurrentRanking       = errors.New("ranking belongs to the current snapshot")
)

func isNoRows(err error) bool {
	return err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows)
}
