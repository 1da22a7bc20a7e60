package dto

import (
	"time"

	"hire-rank/internal/domain/ranking"
)

// WeightsRequest carries a full weight set. Missing fields decode as zero,
// so partial sets fail the total check.
type WeightsRequest struct {
	SkillsWeight      float64 `json:"skills_weight"`
	ExperienceWeight  float64 `json:"experience_weight"`
	EducationWeight   float64 `json:"education_weight"`
	PersonalityWeight float64 `json:"personality_weight"`
	CulturalFitWeight float64 `json:"cultural_fit_weight"`
}

type ShortlistRequest struct {
	Shortlisted bool   `json:"shortlisted"`
	Notes       string `json:"notes"`
}

type HiringStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type InterviewRequest struct {
	InterviewDate time.Time `json:"interview_date"`
	Notes         string    `json:"notes"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

func (r WeightsRequest) Weights() ranking.Weights {
	return ranking.Weights{
		Skills:      r.SkillsWeight,
		Experience:  r.ExperienceWeight,
		Education:   r.EducationWeight,
		Personality: r.PersonalityWeight,
		CulturalFit: r.CulturalFitWeight,
	}
}
