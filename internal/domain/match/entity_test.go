package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestResult_MatchLevel(t *testing.T) {
	assert.Equal(t, LevelNotAnalyzed, Result{}.MatchLevel())
	assert.Equal(t, LevelExcellent, Result{OverallScore: f(80)}.MatchLevel())
	assert.Equal(t, LevelGood, Result{OverallScore: f(79.9)}.MatchLevel())
	assert.Equal(t, LevelAverage, Result{OverallScore: f(40)}.MatchLevel())
	assert.Equal(t, LevelPoor, Result{OverallScore: f(39.99)}.MatchLevel())
}

func TestSummarize(t *testing.T) {
	st := Summarize([]Result{
		{OverallScore: f(90)},
		{OverallScore: f(65)},
		{OverallScore: f(45)},
		{OverallScore: f(10)},
		{},
	})

	assert.Equal(t, 5, st.TotalMatches)
	assert.Equal(t, 1, st.NotAnalyzedCount)
	assert.Equal(t, 90.0, st.MaxScore)
	assert.Equal(t, 10.0, st.MinScore)
	assert.InDelta(t, 52.5, st.AverageScore, 1e-9)
	assert.Equal(t, 1, st.ExcellentCount)
	assert.Equal(t, 1, st.GoodCount)
	assert.Equal(t, 1, st.AverageCount)
	assert.Equal(t, 1, st.PoorCount)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Statistics{}, Summarize(nil))
}
