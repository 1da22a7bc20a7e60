package dto

import (
	"time"

	"hire-rank/internal/domain/ranking"

	"github.com/google/uuid"
)

type RankingResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	Generation     int64     `json:"generation"`
	CandidateID    uuid.UUID `json:"candidate_id"`
	MatchResultID  uuid.UUID `json:"match_result_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`

	WeightedSkillsScore      float64 `json:"weighted_skills_score"`
	WeightedExperienceScore  float64 `json:"weighted_experience_score"`
	WeightedEducationScore   float64 `json:"weighted_education_score"`
	WeightedPersonalityScore float64 `json:"weighted_personality_score"`
	WeightedCulturalFitScore float64 `json:"weighted_cultural_fit_score"`
	RankingScore             float64 `json:"ranking_score"`

	RankPosition         int     `json:"rank_position"`
	PreviousRankPosition *int    `json:"previous_rank_position"`
	RankChange           *int    `json:"rank_change"`
	TotalCandidates      int     `json:"total_candidates"`
	Percentile           float64 `json:"percentile"`

	Weights         ranking.Weights `json:"weights"`
	CriteriaVersion string          `json:"criteria_version"`
	IsCurrent       bool            `json:"is_current"`
	RankedAt        time.Time       `json:"ranked_at"`

	Notes              string     `json:"notes"`
	Shortlisted        bool       `json:"shortlisted"`
	ShortlistedAt      *time.Time `json:"shortlisted_at"`
	ShortlistNotes     string     `json:"shortlist_notes"`
	InterviewScheduled bool       `json:"interview_scheduled"`
	InterviewAt        *time.Time `json:"interview_date"`
	InterviewFeedback  string     `json:"interview_feedback"`
	HiringStatus       string     `json:"hiring_status"`
	HiringStatusLabel  string     `json:"hiring_status_label"`
	HiringDecisionAt   *time.Time `json:"hiring_decision_date"`
}

func NewRankingResponse(r ranking.Ranking) RankingResponse {
	return RankingResponse{
		ID:                       r.ID,
		JobID:                    r.JobID,
		Generation:               r.Generation,
		CandidateID:              r.CandidateID,
		MatchResultID:            r.MatchResultID,
		CandidateName:            r.CandidateName,
		CandidateEmail:           r.CandidateEmail,
		WeightedSkillsScore:      r.WeightedSkills,
		WeightedExperienceScore:  r.WeightedExperience,
		WeightedEducationScore:   r.WeightedEducation,
		WeightedPersonalityScore: r.WeightedPersonality,
		WeightedCulturalFitScore: r.WeightedCulturalFit,
		RankingScore:             r.Score,
		RankPosition:             r.RankPosition,
		PreviousRankPosition:     r.PreviousRankPosition,
		RankChange:               r.RankChange,
		TotalCandidates:          r.TotalCandidates,
		Percentile:               r.Percentile,
		Weights:                  r.Weights,
		CriteriaVersion:          r.CriteriaVersion,
		IsCurrent:                r.IsCurrent,
		RankedAt:                 r.RankedAt,
		Notes:                    r.Notes,
		Shortlisted:              r.Shortlisted,
		ShortlistedAt:            r.ShortlistedAt,
		ShortlistNotes:           r.ShortlistNotes,
		InterviewScheduled:       r.InterviewScheduled,
		InterviewAt:              r.InterviewAt,
		InterviewFeedback:        r.InterviewFeedback,
		HiringStatus:             string(r.HiringStatus),
		HiringStatusLabel:        r.HiringStatus.Label(),
		HiringDecisionAt:         r.HiringDecisionAt,
	}
}

func NewRankingResponses(rs []ranking.Ranking) []RankingResponse {
	out := make([]RankingResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewRankingResponse(r))
	}
	return out
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
