package ranking

import (
	"testing"
	"time"

	"hire-rank/internal/domain/match"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func entry(id uuid.UUID, skills, exp, edu *float64) Entry {
	return Entry{
		Match: match.Result{
			ID:              uuid.New(),
			CandidateID:     id,
			SkillsScore:     skills,
			ExperienceScore: exp,
			EducationScore:  edu,
			IsLatest:        true,
			IsActive:        true,
		},
		CandidateName: id.String()[:8],
	}
}

func params(prev map[uuid.UUID]int) Params {
	return Params{
		JobID:           uuid.New(),
		Weights:         DefaultWeights(),
		CriteriaVersion: "v1.0",
		PreviousRanks:   prev,
		Now:             time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWeighted(t *testing.T) {
	assert.Equal(t, 0.0, Weighted(nil, 50))
	assert.Equal(t, 0.0, Weighted(f(80), 0))
	assert.InDelta(t, 40.0, Weighted(f(80), 50), 1e-9)
}

func TestCompute_CompositeAndOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	rows := Compute([]Entry{
		entry(a, f(60), f(60), f(60)),
		entry(b, f(100), f(100), f(100)),
		entry(c, f(100), nil, nil),
	}, params(nil))

	require.Len(t, rows, 3)
	assert.Equal(t, b, rows[0].CandidateID)
	assert.InDelta(t, 100.0, rows[0].Score, 1e-9)
	assert.Equal(t, a, rows[1].CandidateID)
	assert.InDelta(t, 60.0, rows[1].Score, 1e-9)
	assert.Equal(t, c, rows[2].CandidateID)
	assert.InDelta(t, 50.0, rows[2].Score, 1e-9)
	assert.Equal(t, 0.0, rows[2].WeightedExperience)

	for i, r := range rows {
		assert.Equal(t, i+1, r.RankPosition)
		assert.Equal(t, 3, r.TotalCandidates)
		assert.True(t, r.IsCurrent)
		assert.Equal(t, StatusNotReviewed, r.HiringStatus)
		assert.Nil(t, r.PreviousRankPosition)
		assert.Nil(t, r.RankChange)
	}
}

func TestCompute_RanksArePermutation(t *testing.T) {
	var entries []Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, entry(uuid.New(), f(float64(i*10)), f(50), nil))
	}
	rows := Compute(entries, params(nil))

	seen := map[int]bool{}
	for i, r := range rows {
		seen[r.RankPosition] = true
		if i > 0 {
			assert.GreaterOrEqual(t, rows[i-1].Score, r.Score)
		}
	}
	assert.Len(t, seen, 10)
	for rank := 1; rank <= 10; rank++ {
		assert.True(t, seen[rank])
	}
	assert.InDelta(t, 90.0, rows[0].Percentile, 1e-9)
	assert.InDelta(t, 0.0, rows[9].Percentile, 1e-9)
}

func TestCompute_TiesBreakOnCandidateID(t *testing.T) {
	lo := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hi := uuid.MustParse("ffffffff-0000-0000-0000-000000000001")

	rows := Compute([]Entry{entry(hi, f(70), nil, nil), entry(lo, f(70), nil, nil)}, params(nil))
	assert.Equal(t, lo, rows[0].CandidateID)
	assert.Equal(t, hi, rows[1].CandidateID)

	again := Compute([]Entry{entry(lo, f(70), nil, nil), entry(hi, f(70), nil, nil)}, params(nil))
	assert.Equal(t, RankIndex(rows), RankIndex(again))
}

func TestCompute_PreviousRanks(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	prev := map[uuid.UUID]int{a: 1, b: 2}

	rows := Compute([]Entry{
		entry(a, f(10), nil, nil),
		entry(b, f(90), nil, nil),
		entry(c, f(50), nil, nil),
	}, params(prev))

	idx := map[uuid.UUID]Ranking{}
	for _, r := range rows {
		idx[r.CandidateID] = r
	}

	require.NotNil(t, idx[b].RankChange)
	assert.Equal(t, 2, *idx[b].PreviousRankPosition)
	assert.Equal(t, 1, *idx[b].RankChange)

	require.NotNil(t, idx[a].RankChange)
	assert.Equal(t, -2, *idx[a].RankChange)

	assert.Nil(t, idx[c].PreviousRankPosition)
	assert.Nil(t, idx[c].RankChange)
}

func TestCompute_Empty(t *testing.T) {
	assert.Empty(t, Compute(nil, params(nil)))
}

func TestSummarize(t *testing.T) {
	st := Summarize([]Ranking{
		{Score: 85, Shortlisted: true},
		{Score: 62, InterviewScheduled: true},
		{Score: 41, HiringStatus: StatusHired},
		{Score: 12},
	})
	assert.Equal(t, 4, st.TotalRanked)
	assert.Equal(t, 85.0, st.MaxScore)
	assert.Equal(t, 12.0, st.MinScore)
	assert.InDelta(t, 50.0, st.AverageScore, 1e-9)
	assert.Equal(t, 1, st.Shortlisted)
	assert.Equal(t, 1, st.Interviewed)
	assert.Equal(t, 1, st.Hired)
	assert.Equal(t, 1, st.ExcellentCount)
	assert.Equal(t, 1, st.GoodCount)
	assert.Equal(t, 1, st.AverageCount)
	assert.Equal(t, 1, st.PoorCount)
}
