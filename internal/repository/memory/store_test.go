package memory

import (
	"context"
	"sync"
	"testing"

	"hire-rank/internal/domain/match"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(jobID uuid.UUID, candidates ...uuid.UUID) repository.BuildSnapshot {
	return func(current []ranking.Ranking) ([]ranking.Ranking, error) {
		prev := ranking.RankIndex(current)
		entries := make([]ranking.Entry, 0, len(candidates))
		for i, c := range candidates {
			score := float64(100 - i)
			entries = append(entries, ranking.Entry{Match: match.Result{ID: uuid.New(), CandidateID: c, SkillsScore: &score}})
		}
		return ranking.Compute(entries, ranking.Params{JobID: jobID, Weights: ranking.Weights{Skills: 100}, PreviousRanks: prev}), nil
	}
}

func TestMatchResultRepository_SingleLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Matches()
	jobID, candID := uuid.New(), uuid.New()

	first, err := repo.CreateLatest(ctx, match.Result{JobID: jobID, CandidateID: candID, IsActive: true, RecalculationCount: 1})
	require.NoError(t, err)
	second, err := repo.CreateLatest(ctx, match.Result{JobID: jobID, CandidateID: candID, IsActive: true, RecalculationCount: 1})
	require.NoError(t, err)

	old, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsLatest)

	latest, err := repo.FindLatest(ctx, jobID, candID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	all, err := repo.FindLatestByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, repo.Update(ctx, old), repository.ErrStaleMatchResult)
	assert.ErrorIs(t, repo.Update(ctx, match.Result{ID: uuid.New()}), repository.ErrMatchResultNotFound)
}

func TestMatchResultRepository_DeactivateHidesFromJob(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Matches()
	jobID := uuid.New()

	m, err := repo.CreateLatest(ctx, match.Result{JobID: jobID, CandidateID: uuid.New(), IsActive: true})
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, m.ID))

	all, err := repo.FindLatestByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Empty(t, all)

	n, err := repo.DeleteByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRankingRepository_Generations(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Rankings()
	jobID, a, b := uuid.New(), uuid.New(), uuid.New()

	first, err := repo.Promote(ctx, jobID, snapshot(jobID, a, b))
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, int64(1), first[0].Generation)

	second, err := repo.Promote(ctx, jobID, snapshot(jobID, b, a))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second[0].Generation)

	current, err := repo.FindCurrentByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.Equal(t, b, current[0].CandidateID)
	require.NotNil(t, current[0].RankChange)
	assert.Equal(t, 1, *current[0].RankChange)

	old, err := repo.FindByID(ctx, first[0].ID)
	require.NoError(t, err)
	assert.False(t, old.IsCurrent)

	history, err := repo.FindHistory(ctx, jobID, a)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].IsCurrent)
	assert.Equal(t, int64(2), history[0].Generation)

	assert.ErrorIs(t, repo.Delete(ctx, current[0].ID), repository.ErrCurrentRanking)
	require.NoError(t, repo.Delete(ctx, old.ID))
	assert.ErrorIs(t, repo.Delete(ctx, old.ID), repository.ErrRankingNotFound)
}

func TestRankingRepository_EmptySnapshotRejected(t *testing.T) {
	repo := NewStore().Rankings()
	_, err := repo.Promote(context.Background(), uuid.New(), snapshot(uuid.New()))
	assert.ErrorIs(t, err, repository.ErrEmptyRankingSnapshot)
}

func TestRankingRepository_JobsIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Rankings()
	j1, j2, c := uuid.New(), uuid.New(), uuid.New()

	_, err := repo.Promote(ctx, j1, snapshot(j1, c))
	require.NoError(t, err)
	_, err = repo.Promote(ctx, j2, snapshot(j2, c))
	require.NoError(t, err)
	_, err = repo.Promote(ctx, j2, snapshot(j2, c))
	require.NoError(t, err)

	current, err := repo.FindCurrentByJob(ctx, j1)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.True(t, current[0].IsCurrent)
	assert.Equal(t, int64(1), current[0].Generation)
}

func TestRankingRepository_ConcurrentPromote(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Rankings()
	jobID := uuid.New()
	cands := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Promote(ctx, jobID, snapshot(jobID, cands...))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	current, err := repo.FindCurrentByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, current, 3)
	for i, row := range current {
		assert.Equal(t, int64(20), row.Generation)
		assert.Equal(t, i+1, row.RankPosition)
		require.NotNil(t, row.PreviousRankPosition)
		assert.Equal(t, i+1, *row.PreviousRankPosition)
	}
}
