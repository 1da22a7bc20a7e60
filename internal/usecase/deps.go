package usecase

import (
	"context"
	"time"

	"hire-rank/internal/repository"
)

type Repositories struct {
	Jobs       repository.JobRepository
	Candidates repository.CandidateRepository
	Matches    repository.MatchResultRepository
	Rankings   repository.RankingRepository
}

// Cache is a versioned cache-aside store. Version is read before loading from
// the repository, and SetJSONAt refuses the write if Invalidate ran since.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetJSONAt(ctx context.Context, key string, version int64, value any, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, keys ...string) error
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) Version(context.Context, string) (int64, error)     { return 0, nil }
func (nopCache) SetJSONAt(context.Context, string, int64, any, time.Duration) (bool, error) {
	return false, nil
}
func (nopCache) Invalidate(context.Context, ...string) error { return nil }

func utcNow() time.Time { return time.Now().UTC() }
