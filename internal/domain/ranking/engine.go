package ranking

import (
	"bytes"
	"sort"
	"time"

	"hire-rank/internal/domain/match"

	"github.com/google/uuid"
)

// Entry is one latest match result to be ranked, with the candidate identity
// copied onto the snapshot.
type Entry struct {
	Match          match.Result
	CandidateName  string
	CandidateEmail string
}

type Params struct {
	JobID           uuid.UUID
	Weights         Weights
	CriteriaVersion string
	// PreviousRanks maps candidate id to rank in the snapshot being replaced.
	PreviousRanks map[uuid.UUID]int
	Now           time.Time
}

// Weighted is score*weight/100, or 0 when the dimension was not scored or
// carries no weight.
func Weighted(score *float64, weight float64) float64 {
	if score == nil || weight <= 0 {
		return 0
	}
	return *score * (weight / 100)
}

// Percentile is position based: rank 1 of N gives (N-1)*100/N, rank N gives 0.
func Percentile(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(total-index-1) * 100 / float64(total)
}

// Compute builds a full snapshot. Rows are ordered by composite score
// descending; equal scores are ordered by candidate id ascending so reruns
// over the same data always produce the same ranks.
func Compute(entries []Entry, p Params) []Ranking {
	out := make([]Ranking, 0, len(entries))
	for _, e := range entries {
		r := Ranking{
			ID:                  uuid.New(),
			JobID:               p.JobID,
			CandidateID:         e.Match.CandidateID,
			MatchResultID:       e.Match.ID,
			CandidateName:       e.CandidateName,
			CandidateEmail:      e.CandidateEmail,
			WeightedSkills:      Weighted(e.Match.SkillsScore, p.Weights.Skills),
			WeightedExperience:  Weighted(e.Match.ExperienceScore, p.Weights.Experience),
			WeightedEducation:   Weighted(e.Match.EducationScore, p.Weights.Education),
			WeightedPersonality: Weighted(e.Match.PersonalityScore, p.Weights.Personality),
			WeightedCulturalFit: Weighted(e.Match.CulturalFitScore, p.Weights.CulturalFit),
			Weights:             p.Weights,
			CriteriaVersion:     p.CriteriaVersion,
			IsCurrent:           true,
			RankedAt:            p.Now,
			HiringStatus:        StatusNotReviewed,
		}
		r.Score = r.WeightedSkills + r.WeightedExperience + r.WeightedEducation + r.WeightedPersonality + r.WeightedCulturalFit
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return bytes.Compare(out[i].CandidateID[:], out[j].CandidateID[:]) < 0
	})

	total := len(out)
	for i := range out {
		rank := i + 1
		out[i].RankPosition = rank
		out[i].TotalCandidates = total
		out[i].Percentile = Percentile(i, total)

		if prev, ok := p.PreviousRanks[out[i].CandidateID]; ok {
			change := prev - rank
			out[i].PreviousRankPosition = &prev
			out[i].RankChange = &change
		}
	}
	return out
}

// RankIndex maps candidate id to rank position for a snapshot.
func RankIndex(rows []Ranking) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		out[r.CandidateID] = r.RankPosition
	}
	return out
}
