package matching

import (
	"context"
	"testing"

	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillsScore(t *testing.T) {
	tests := []struct {
		name      string
		required  []string
		candidate []string
		want      float64
	}{
		{name: "superset", required: []string{"java", "sql"}, candidate: []string{"java", "sql", "python"}, want: 100},
		{name: "no overlap", required: []string{"java", "sql"}, candidate: []string{"python"}, want: 0},
		{name: "no requirements", required: nil, candidate: []string{"anything"}, want: 100},
		{name: "half", required: []string{"java", "sql"}, candidate: []string{"SQL "}, want: 50},
		{name: "substring is not exact", required: []string{"java"}, candidate: []string{"javascript"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkillsScore(tt.required, tt.candidate), 1e-9)
		})
	}
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"java", "spring boot", "sql"}, ParseSkills(" Java, Spring Boot ,,sql, JAVA"))
	assert.Nil(t, ParseSkills("   "))
}

func TestParseExperienceRange(t *testing.T) {
	tests := []struct {
		expr string
		want ExperienceRange
	}{
		{expr: "3-5", want: ExperienceRange{Min: 3, Max: 5}},
		{expr: "3-5 years", want: ExperienceRange{Min: 3, Max: 5}},
		{expr: "2+", want: ExperienceRange{Min: 2, Max: 20}},
		{expr: "2+ years", want: ExperienceRange{Min: 2, Max: 20}},
		{expr: "5", want: ExperienceRange{Min: 5, Max: 7}},
		{expr: "senior", want: ExperienceRange{Min: 0, Max: 10}},
		{expr: "3-", want: ExperienceRange{Min: 0, Max: 10}},
		{expr: "3-5+", want: ExperienceRange{Min: 0, Max: 10}},
		{expr: "", want: ExperienceRange{Min: 0, Max: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExperienceRange(tt.expr))
		})
	}
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		name     string
		required string
		years    int
		want     float64
	}{
		{name: "within range", required: "3-5", years: 4, want: 100},
		{name: "range lower bound", required: "3-5", years: 3, want: 100},
		{name: "below range", required: "3-5", years: 1, want: 70.0 / 3},
		{name: "above range", required: "3-5", years: 7, want: 80},
		{name: "far above floors at 70", required: "3-5", years: 30, want: 70},
		{name: "zero years", required: "2+", years: 0, want: 0},
		{name: "unparseable uses default", required: "lots", years: 12, want: 80},
		{name: "bare number", required: "5", years: 7, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExperienceScore(tt.required, tt.years), 0.01)
		})
	}
}

func TestEducationScore(t *testing.T) {
	tests := []struct {
		required  string
		candidate string
		want      float64
	}{
		{required: "Bachelor", candidate: "Bachelor of Science", want: 100},
		{required: "bachelor", candidate: "Master of Arts", want: 90},
		{required: "Master", candidate: "bachelor degree", want: 70},
		{required: "PhD", candidate: "Masters in CS", want: 80},
		{required: "PhD", candidate: "High school", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.required+"/"+tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, EducationScore(tt.required, tt.candidate))
		})
	}
}

func TestClassifySkills_Partition(t *testing.T) {
	required := []string{"java", "sql", "react", "kubernetes"}
	cand := []string{"java", "postgresql", "reactjs"}

	got := ClassifySkills(required, cand)

	assert.Equal(t, []string{"java"}, got.Matched)
	assert.ElementsMatch(t, []string{"react", "sql"}, got.Partial)
	assert.Equal(t, []string{"kubernetes"}, got.Missing)

	seen := map[string]int{}
	for _, bucket := range [][]string{got.Matched, got.Partial, got.Missing} {
		for _, s := range bucket {
			seen[s]++
		}
	}
	require.Len(t, seen, len(required))
	for _, s := range required {
		assert.Equal(t, 1, seen[s], s)
	}
}

func TestClassifySkills_EmptyCandidate(t *testing.T) {
	got := ClassifySkills([]string{"go"}, nil)
	assert.Empty(t, got.Matched)
	assert.Empty(t, got.Partial)
	assert.Equal(t, []string{"go"}, got.Missing)
}

func TestScore_AbsentDimensions(t *testing.T) {
	j := job.Job{ID: uuid.New(), RequiredSkills: "go", RequiredExperience: "3-5", RequiredEducation: ""}
	c := candidate.Candidate{ID: uuid.New(), Education: "BSc"}

	s := Score(j, c)

	assert.Nil(t, s.Skills)
	assert.Nil(t, s.Experience)
	assert.Nil(t, s.Education)
	assert.Nil(t, OverallScore(s))
}

func TestScore_AllDimensions(t *testing.T) {
	years := 4
	j := job.Job{ID: uuid.New(), RequiredSkills: "Go, SQL", RequiredExperience: "3-5 years", RequiredEducation: "bachelor"}
	c := candidate.Candidate{ID: uuid.New(), Skills: "go", ExperienceYears: &years, Education: "Master of Science"}

	s := Score(j, c)

	require.NotNil(t, s.Skills)
	require.NotNil(t, s.Experience)
	require.NotNil(t, s.Education)
	assert.Equal(t, 50.0, *s.Skills)
	assert.Equal(t, 100.0, *s.Experience)
	assert.Equal(t, 90.0, *s.Education)

	overall := OverallScore(s)
	require.NotNil(t, overall)
	assert.InDelta(t, (50*50+100*30+90*20)/100.0, *overall, 1e-9)
}

func TestOverallScore_RenormalisesOverPresent(t *testing.T) {
	skills := 80.0
	overall := OverallScore(Scores{Skills: &skills})
	require.NotNil(t, overall)
	assert.Equal(t, 80.0, *overall)
}

func TestHashSignals_DeterministicAndInRange(t *testing.T) {
	j := job.Job{ID: uuid.New()}
	c := candidate.Candidate{ID: uuid.New()}

	a, err := HashSignals{}.Signals(context.Background(), j, c)
	require.NoError(t, err)
	b, err := HashSignals{}.Signals(context.Background(), j, c)
	require.NoError(t, err)

	require.NotNil(t, a.Personality)
	require.NotNil(t, a.CulturalFit)
	assert.Equal(t, *a.Personality, *b.Personality)
	assert.Equal(t, *a.CulturalFit, *b.CulturalFit)
	assert.GreaterOrEqual(t, *a.Personality, 70.0)
	assert.Less(t, *a.Personality, 95.0)
	assert.GreaterOrEqual(t, *a.CulturalFit, 65.0)
	assert.Less(t, *a.CulturalFit, 95.0)

	none, err := NoSignals{}.Signals(context.Background(), j, c)
	require.NoError(t, err)
	assert.Nil(t, none.Personality)
	assert.Nil(t, none.CulturalFit)
}
