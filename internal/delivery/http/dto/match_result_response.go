package dto

import (
	"time"

	"hire-rank/internal/domain/match"

	"github.com/google/uuid"
)

type MatchResultResponse struct {
	ID          uuid.UUID  `json:"id"`
	JobID       uuid.UUID  `json:"job_id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	ResumeID    *uuid.UUID `json:"resume_id"`

	OverallScore     *float64 `json:"overall_score"`
	SkillsScore      *float64 `json:"skills_score"`
	ExperienceScore  *float64 `json:"experience_score"`
	EducationScore   *float64 `json:"education_score"`
	PersonalityScore *float64 `json:"personality_score"`
	CulturalFitScore *float64 `json:"cultural_fit_score"`
	MatchLevel       string   `json:"match_level"`

	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	PartialSkills []string `json:"partial_skills"`

	IsLatest           bool      `json:"is_latest"`
	IsActive           bool      `json:"is_active"`
	RecalculationCount int       `json:"recalculation_count"`
	MatchDate          time.Time `json:"match_date"`
	LastRecalculatedAt time.Time `json:"last_recalculated_at"`
}

func NewMatchResultResponse(r match.Result) MatchResultResponse {
	return MatchResultResponse{
		ID:                 r.ID,
		JobID:              r.JobID,
		CandidateID:        r.CandidateID,
		ResumeID:           r.ResumeID,
		OverallScore:       r.OverallScore,
		SkillsScore:        r.SkillsScore,
		ExperienceScore:    r.ExperienceScore,
		EducationScore:     r.EducationScore,
		PersonalityScore:   r.PersonalityScore,
		CulturalFitScore:   r.CulturalFitScore,
		MatchLevel:         r.MatchLevel(),
		MatchedSkills:      orEmpty(r.MatchedSkills),
		MissingSkills:      orEmpty(r.MissingSkills),
		PartialSkills:      orEmpty(r.PartialSkills),
		IsLatest:           r.IsLatest,
		IsActive:           r.IsActive,
		RecalculationCount: r.RecalculationCount,
		MatchDate:          r.MatchDate,
		LastRecalculatedAt: r.LastRecalculatedAt,
	}
}

func NewMatchResultResponses(rs []match.Result) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewMatchResultResponse(r))
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
