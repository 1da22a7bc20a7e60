package matching

import (
	"math"
	"strings"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"
)

// Quick-score blend used for single match display. Ranking uses its own
// configurable weights.
const (
	quickSkillsWeight     = 50.0
	quickExperienceWeight = 30.0
	quickEducationWeight  = 20.0
)

// Scores holds the locally computed dimensions. A nil dimension was not
// scored because one side had no data.
type Scores struct {
	Skills     *float64
	Experience *float64
	Education  *float64
}

// Score never fails: malformed inputs fall back to the defaults of each
// dimension formula.
func Score(j job.Job, c candidate.Candidate) Scores {
	var out Scores

	if candSkills := ParseSkills(c.Skills); len(candSkills) > 0 {
		out.Skills = ptr(SkillsScore(ParseSkills(j.RequiredSkills), candSkills))
	}
	if strings.TrimSpace(j.RequiredExperience) != "" && c.ExperienceYears != nil {
		out.Experience = ptr(ExperienceScore(j.RequiredExperience, *c.ExperienceYears))
	}
	if strings.TrimSpace(j.RequiredEducation) != "" && strings.TrimSpace(c.Education) != "" {
		out.Education = ptr(EducationScore(j.RequiredEducation, c.Education))
	}

	return out
}

// OverallScore blends the present dimensions 50/30/20 and renormalises over
// the weights actually used. Nil when nothing was scored.
func OverallScore(s Scores) *float64 {
	var total, weight float64
	add := func(v *float64, w float64) {
		if v == nil {
			return
		}
		total += *v * w
		weight += w
	}
	add(s.Skills, quickSkillsWeight)
	add(s.Experience, quickExperienceWeight)
	add(s.Education, quickEducationWeight)

	if weight == 0 {
		return nil
	}
	v := math.Min(100, math.Max(0, total/weight))
	return &v
}

func ptr(v float64) *float64 {
	return &v
}
