package match

import (
	"time"

	"github.com/google/uuid"
)

// Result is one scoring event for a (job, candidate) pair. At most one result
// per pair has IsLatest set; demoted results are never rescored.
type Result struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	ResumeID    *uuid.UUID

	OverallScore     *float64
	SkillsScore      *float64
	ExperienceScore  *float64
	EducationScore   *float64
	PersonalityScore *float64
	CulturalFitScore *float64

	MatchedSkills []string
	MissingSkills []string
	PartialSkills []string

	IsLatest           bool
	IsActive           bool
	RecalculationCount int
	MatchDate          time.Time
	LastRecalculatedAt time.Time
}

const (
	LevelNotAnalyzed = "Not Analyzed"
	LevelExcellent   = "Excellent Match"
	LevelGood        = "Good Match"
	LevelAverage     = "Average Match"
	LevelPoor        = "Poor Match"
)

func (r Result) MatchLevel() string {
	if r.OverallScore == nil {
		return LevelNotAnalyzed
	}
	return LevelFor(*r.OverallScore)
}

func LevelFor(score float64) string {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelAverage
	default:
		return LevelPoor
	}
}

type Statistics struct {
	TotalMatches     int     `json:"total_matches"`
	AverageScore     float64 `json:"average_score"`
	MaxScore         float64 `json:"max_score"`
	MinScore         float64 `json:"min_score"`
	ExcellentCount   int     `json:"excellent_matches"`
	GoodCount        int     `json:"good_matches"`
	AverageCount     int     `json:"average_matches"`
	PoorCount        int     `json:"poor_matches"`
	NotAnalyzedCount int     `json:"not_analyzed"`
}

// Summarize aggregates overall scores. Unscored results count towards the
// total but not towards the score figures.
func Summarize(results []Result) Statistics {
	st := Statistics{TotalMatches: len(results)}

	scored := 0
	var sum float64
	for _, r := range results {
		if r.OverallScore == nil {
			st.NotAnalyzedCount++
			continue
		}
		v := *r.OverallScore
		if scored == 0 || v > st.MaxScore {
			st.MaxScore = v
		}
		if scored == 0 || v < st.MinScore {
			st.MinScore = v
		}
		sum += v
		scored++

		switch LevelFor(v) {
		case LevelExcellent:
			st.ExcellentCount++
		case LevelGood:
			st.GoodCount++
		case LevelAverage:
			st.AverageCount++
		default:
			st.PoorCount++
		}
	}
	if scored > 0 {
		st.AverageScore = sum / float64(scored)
	}
	return st
}
